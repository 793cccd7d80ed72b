package htmldom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func hasAttr(n *html.Node, key string) (int, bool) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			return i, true
		}
	}
	return -1, false
}

func getAttr(n *html.Node, key string) string {
	if idx, ok := hasAttr(n, key); ok {
		return n.Attr[idx].Val
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	if idx, ok := hasAttr(n, key); ok {
		n.Attr[idx].Val = value
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	if idx, ok := hasAttr(n, key); ok {
		n.Attr = append(n.Attr[:idx], n.Attr[idx+1:]...)
	}
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func isValueControl(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Input, atom.Textarea:
		return true
	default:
		return false
	}
}

// isFixedValueInput reports inputs whose value is not user editable, which a
// form reset leaves untouched.
func isFixedValueInput(n *html.Node) bool {
	if n.DataAtom != atom.Input {
		return false
	}
	switch strings.ToLower(getAttr(n, "type")) {
	case "hidden", "submit", "button", "reset", "image":
		return true
	default:
		return false
	}
}

func nodeValue(n *html.Node) string {
	if n.DataAtom == atom.Textarea {
		return textContent(n)
	}
	return getAttr(n, "value")
}

func setNodeValue(n *html.Node, value string) {
	if n.DataAtom == atom.Textarea {
		clearChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return
	}
	setAttr(n, "value", value)
}

func isSubmitControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Button:
		kind := strings.ToLower(strings.TrimSpace(getAttr(n, "type")))
		return kind == "" || kind == "submit"
	case atom.Input:
		kind := strings.ToLower(strings.TrimSpace(getAttr(n, "type")))
		return kind == "submit" || kind == "image"
	default:
		return false
	}
}

func owningForm(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return p
		}
	}
	return nil
}

func display(n *html.Node) string {
	for _, decl := range strings.Split(getAttr(n, "style"), ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "display") {
			return strings.ToLower(strings.TrimSpace(value))
		}
	}
	return ""
}

// setDisplay rewrites the inline display declaration, keeping other styles.
// An empty value removes the declaration.
func setDisplay(n *html.Node, value string) {
	var kept []string
	for _, decl := range strings.Split(getAttr(n, "style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		key, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(key), "display") {
			continue
		}
		kept = append(kept, decl)
	}
	if value != "" {
		kept = append(kept, "display: "+value)
	}
	if len(kept) == 0 {
		removeAttr(n, "style")
		return
	}
	setAttr(n, "style", strings.Join(kept, "; "))
}
