package eforms

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// node 轻量XML节点树：逐token构建，保留命名空间URI与属性，
// 供解析器按"URI+局部名"精确寻址（同名元素在不同嵌套深度含义不同）
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	children []*node
}

// decodeTree 将原始XML解码为节点树，返回根节点
func decodeTree(raw []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var root *node
	var stack []*node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Copy().Attr}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// is 判断节点是否为指定命名空间下的局部名；
// 历史文档可能不带命名空间前缀，空Space视为匹配（向后兼容）
func (n *node) is(uri, local string) bool {
	return n.name.Local == local && (n.name.Space == uri || n.name.Space == "")
}

// child 返回第一个匹配的直接子节点
func (n *node) child(uri, local string) *node {
	for _, c := range n.children {
		if c.is(uri, local) {
			return c
		}
	}
	return nil
}

// childText 返回第一个匹配直接子节点的去空白文本
func (n *node) childText(uri, local string) string {
	if c := n.child(uri, local); c != nil {
		return strings.TrimSpace(c.text)
	}
	return ""
}

// descendant 深度优先返回第一个匹配的后代节点
func (n *node) descendant(uri, local string) *node {
	for _, c := range n.children {
		if c.is(uri, local) {
			return c
		}
		if d := c.descendant(uri, local); d != nil {
			return d
		}
	}
	return nil
}

// descendants 深度优先收集全部匹配后代
func (n *node) descendants(uri, local string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.is(uri, local) {
			out = append(out, c)
		}
		out = append(out, c.descendants(uri, local)...)
	}
	return out
}

// attr 返回节点属性值（按局部名匹配）
func (n *node) attr(local string) string {
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
