// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract parses repository landing pages into candidate
// knowledge records: structured metadata tags plus the download link
// for the attached document, when one exists.
package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// attachmentPlaceholder is the viewer path segment DSpace emits in file
// links. It is substituted with the bitstream download path.
const attachmentPlaceholder = "viewer?file=27232;"

// Candidate is the record extracted from one landing page, before an
// identifier is minted and the record is persisted. FileURL is the
// absolute attachment download URL, empty when the page carries no
// matching link.
type Candidate struct {
	Authors      []string
	CreationDate int
	IssuerID     string
	Summary      string
	Title        string
	Type         string
	FileURL      string
}

// Parse scans the structured metadata tags of a landing page document.
// Repeated DC.creator tags accumulate in order, duplicates preserved.
// citation_date is parsed as an integer year; absent or non-numeric
// content leaves CreationDate at zero without failing the extraction.
// The remaining recognized tags are single-valued, last occurrence
// wins. Unknown tag names are ignored.
func Parse(doc *goquery.Document, sourceURL, repositoryBase string) Candidate {
	var c Candidate

	doc.Find("meta").Each(func(_ int, meta *goquery.Selection) {
		name, _ := meta.Attr("name")
		content, _ := meta.Attr("content")
		switch name {
		case "DC.creator":
			c.Authors = append(c.Authors, content)
		case "citation_date":
			if year, err := strconv.Atoi(strings.TrimSpace(content)); err == nil {
				c.CreationDate = year
			}
		case "citation_issn":
			c.IssuerID = content
		case "DCTERMS.abstract":
			c.Summary = content
		case "DC.title":
			c.Title = content
		case "DC.type":
			c.Type = content
		}
	})

	c.FileURL = attachmentURL(doc, sourceURL, repositoryBase)
	return c
}

// attachmentURL scans hyperlinks in document order for the first href
// containing "file" and rewrites it into an absolute download URL: the
// viewer placeholder segment becomes bitstream/handle/net/<id>/, where
// <id> is the trailing path segment of the source URL, and the first
// "&" separator is normalized to "?". Returns "" when no link matches;
// a document may legitimately have no attachment.
func attachmentURL(doc *goquery.Document, sourceURL, repositoryBase string) string {
	handle := trailingSegment(sourceURL)

	var fileURL string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "file") {
			return true
		}
		rewritten := strings.Replace(href, attachmentPlaceholder, "bitstream/handle/net/"+handle+"/", 1)
		rewritten = strings.Replace(rewritten, "&", "?", 1)
		fileURL = repositoryBase + rewritten
		return false
	})
	return fileURL
}

// trailingSegment returns the part of u after the last "/", or "" when
// u contains no slash.
func trailingSegment(u string) string {
	i := strings.LastIndex(u, "/")
	if i < 0 {
		return ""
	}
	return u[i+1:]
}
