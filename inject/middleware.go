// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	errNoHead   = errors.New("parsed document has no head element")
	errNoScript = errors.New("script fragment parsed to no script element")
)

// Middleware wraps next so every HTML response it produces carries the
// injected artifact in its <head>. Non-HTML responses pass through
// unchanged. Because the page content now depends on request-time
// environment state, rewritten responses are marked Cache-Control:
// no-store — the Go rendition of opting the page out of static caching.
//
// The request is attached to the context before next runs, so
// header-based nonce lookups resolve. Placement follows the emission
// strategy: start of <head> for Unmanaged (guaranteed to execute before
// any instrumentation script later in the document), end of <head>
// otherwise.
func (i *Injector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &bufferingWriter{header: make(http.Header)}
		next.ServeHTTP(rec, r.WithContext(WithRequest(r.Context(), r)))

		if !rec.isHTML() {
			rec.copyTo(w)
			return
		}

		tag, err := i.ScriptTag(WithRequest(r.Context(), r))
		if err != nil {
			i.cfg.log.Error("building injection script tag", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		rewritten, err := insertIntoHead(rec.body.Bytes(), string(tag), i.cfg.unmanaged)
		if err != nil {
			i.cfg.log.Error("rewriting HTML response", "error", err)
			rec.copyTo(w)
			return
		}

		rec.header.Set("Cache-Control", "no-store")
		rec.header.Set("Content-Length", strconv.Itoa(len(rewritten)))
		copyHeader(w.Header(), rec.header)
		w.WriteHeader(rec.status())
		_, _ = w.Write(rewritten)
	})
}

// insertIntoHead parses the document and places the script element inside
// <head>: as the first child when atStart, as the last otherwise. The
// parser synthesizes html/head/body elements when the handler emitted a
// fragment, so there is always a head to target.
func insertIntoHead(doc []byte, scriptTag string, atStart bool) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	head := findElement(root, atom.Head)
	if head == nil {
		// unreachable: the parser synthesizes html/head/body
		return nil, errNoHead
	}

	script, err := parseScriptNode(scriptTag)
	if err != nil {
		return nil, err
	}

	if atStart && head.FirstChild != nil {
		head.InsertBefore(script, head.FirstChild)
	} else {
		head.AppendChild(script)
	}

	var out bytes.Buffer
	if err := html.Render(&out, root); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// parseScriptNode turns the rendered script tag back into a detached node
// the document tree can adopt.
func parseScriptNode(scriptTag string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	nodes, err := html.ParseFragment(strings.NewReader(scriptTag), context)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			return n, nil
		}
	}
	// unreachable: the tag is built by ScriptTag
	return nil, errNoScript
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// bufferingWriter captures a handler's full response so the middleware
// can decide afterwards whether to rewrite it.
type bufferingWriter struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
}

func (b *bufferingWriter) Header() http.Header {
	return b.header
}

func (b *bufferingWriter) Write(p []byte) (int, error) {
	if b.statusCode == 0 {
		b.statusCode = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferingWriter) WriteHeader(statusCode int) {
	if b.statusCode == 0 {
		b.statusCode = statusCode
	}
}

func (b *bufferingWriter) status() int {
	if b.statusCode == 0 {
		return http.StatusOK
	}
	return b.statusCode
}

func (b *bufferingWriter) isHTML() bool {
	ct := b.header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(b.body.Bytes())
	}
	return strings.HasPrefix(ct, "text/html")
}

func (b *bufferingWriter) copyTo(w http.ResponseWriter) {
	copyHeader(w.Header(), b.header)
	w.WriteHeader(b.status())
	_, _ = w.Write(b.body.Bytes())
}

func copyHeader(dst, src http.Header) {
	for k, values := range src {
		for _, v := range values {
			dst.Add(k, v)
		}
	}
}
