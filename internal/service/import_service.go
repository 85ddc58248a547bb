package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aangan-site/aangan-api/internal/constants"
	"github.com/aangan-site/aangan-api/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// ImportService converts uploaded .docx documents into sanitized HTML
// ready for the post editor. Embedded images are stored through the
// upload service and referenced by URL in the output.
type ImportService struct {
	upload   *UploadService
	sanitize *bluemonday.Policy
}

// NewImportService creates an import service.
func NewImportService(upload *UploadService) *ImportService {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("h2", "h3", "h4", "p", "ul", "ol", "li",
		"table", "tr", "td", "th", "strong", "em", "br", "blockquote")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("src", "alt").OnElements("img")
	policy.AllowURLSchemes("http", "https")
	policy.AllowRelativeURLs(true)

	return &ImportService{
		upload:   upload,
		sanitize: policy,
	}
}

// ImportDocx converts a multipart .docx upload to HTML.
func (s *ImportService) ImportDocx(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if ext := strings.ToLower(path.Ext(file.Filename)); ext != ".docx" {
		return "", ErrInvalidDocx
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrInvalidDocx
	}

	doc := docxArchive{files: map[string][]byte{}}
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return "", ErrInvalidDocx
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", ErrInvalidDocx
		}
		doc.files[f.Name] = content
	}

	documentXML, ok := doc.files["word/document.xml"]
	if !ok {
		return "", ErrInvalidDocx
	}

	rels := parseDocxRelationships(doc.files["word/_rels/document.xml.rels"])

	var body docxBody
	if err := xml.Unmarshal(documentXML, &docxDocument{Body: &body}); err != nil {
		return "", ErrInvalidDocx
	}

	converted, err := s.renderBlocks(ctx, body.Blocks, &doc, rels)
	if err != nil {
		return "", err
	}
	return s.sanitize.Sanitize(converted), nil
}

// docxArchive holds the unpacked zip entries of one document.
type docxArchive struct {
	files map[string][]byte
}

type docxDocument struct {
	XMLName xml.Name  `xml:"document"`
	Body    *docxBody `xml:"body"`
}

// docxBody keeps paragraphs and tables in document order, which a
// plain struct mapping would lose.
type docxBody struct {
	Blocks []interface{}
}

// UnmarshalXML walks the body's children, keeping block order.
func (b *docxBody) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p docxParagraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, &p)
			case "tbl":
				var tbl docxTable
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, &tbl)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

type docxParagraph struct {
	Props docxParaProps
	Items []interface{} // *docxRun and *docxHyperlink in order
}

type docxParaProps struct {
	Style string
	List  bool
}

// UnmarshalXML collects properties, runs, and hyperlinks in order.
func (p *docxParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props docxRawParaProps
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Props.Style = props.Style.Val
				p.Props.List = props.NumProps != nil
			case "r":
				var run docxRun
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, &run)
			case "hyperlink":
				var link docxHyperlink
				if err := d.DecodeElement(&link, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, &link)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

type docxRawParaProps struct {
	Style    docxVal   `xml:"pStyle"`
	NumProps *struct{} `xml:"numPr"`
}

type docxVal struct {
	Val string `xml:"val,attr"`
}

type docxRun struct {
	Props    docxRunProps  `xml:"rPr"`
	Texts    []docxText    `xml:"t"`
	Breaks   []struct{}    `xml:"br"`
	Drawings []docxDrawing `xml:"drawing"`
}

type docxRunProps struct {
	Bold   *docxToggle `xml:"b"`
	Italic *docxToggle `xml:"i"`
}

type docxToggle struct {
	Val string `xml:"val,attr"`
}

// On reports whether a run toggle is set. An absent val means on.
func (t *docxToggle) On() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "false", "0", "none":
		return false
	}
	return true
}

type docxText struct {
	Value string `xml:",chardata"`
}

type docxDrawing struct {
	InlineBlips []docxBlip `xml:"inline>graphic>graphicData>pic>blipFill>blip"`
	AnchorBlips []docxBlip `xml:"anchor>graphic>graphicData>pic>blipFill>blip"`
}

type docxBlip struct {
	Embed string `xml:"embed,attr"`
}

type docxHyperlink struct {
	ID   string    `xml:"id,attr"`
	Runs []docxRun `xml:"r"`
}

type docxTable struct {
	Rows []docxTableRow `xml:"tr"`
}

type docxTableRow struct {
	Cells []docxTableCell `xml:"tc"`
}

type docxTableCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxRelationship struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type docxRelationshipList struct {
	Rels []docxRelationship `xml:"Relationship"`
}

func parseDocxRelationships(data []byte) map[string]docxRelationship {
	rels := map[string]docxRelationship{}
	if len(data) == 0 {
		return rels
	}
	var list docxRelationshipList
	if err := xml.Unmarshal(data, &list); err != nil {
		return rels
	}
	for _, rel := range list.Rels {
		rels[rel.ID] = rel
	}
	return rels
}

func (s *ImportService) renderBlocks(ctx context.Context, blocks []interface{}, doc *docxArchive, rels map[string]docxRelationship) (string, error) {
	var buf strings.Builder
	inList := false

	closeList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}

	for _, block := range blocks {
		switch b := block.(type) {
		case *docxParagraph:
			inner, err := s.renderParagraphItems(ctx, b.Items, doc, rels)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(inner) == "" {
				continue
			}

			if b.Props.List {
				if !inList {
					buf.WriteString("<ul>")
					inList = true
				}
				buf.WriteString("<li>" + inner + "</li>")
				continue
			}
			closeList()

			tag := paragraphTag(b.Props.Style)
			buf.WriteString("<" + tag + ">" + inner + "</" + tag + ">")
		case *docxTable:
			closeList()
			tableHTML, err := s.renderTable(ctx, b, doc, rels)
			if err != nil {
				return "", err
			}
			buf.WriteString(tableHTML)
		}
	}
	closeList()

	return buf.String(), nil
}

// paragraphTag maps document styles onto the editor's heading scheme.
// The page already owns h1, so document titles start at h2.
func paragraphTag(style string) string {
	switch strings.ToLower(style) {
	case "title", "heading1":
		return "h2"
	case "heading2":
		return "h3"
	case "heading3":
		return "h4"
	case "quote", "intensequote":
		return "blockquote"
	default:
		return "p"
	}
}

func (s *ImportService) renderParagraphItems(ctx context.Context, items []interface{}, doc *docxArchive, rels map[string]docxRelationship) (string, error) {
	var buf strings.Builder
	for _, item := range items {
		switch it := item.(type) {
		case *docxRun:
			runHTML, err := s.renderRun(ctx, it, doc, rels)
			if err != nil {
				return "", err
			}
			buf.WriteString(runHTML)
		case *docxHyperlink:
			var inner strings.Builder
			for i := range it.Runs {
				runHTML, err := s.renderRun(ctx, &it.Runs[i], doc, rels)
				if err != nil {
					return "", err
				}
				inner.WriteString(runHTML)
			}
			href := ""
			if rel, ok := rels[it.ID]; ok {
				href = rel.Target
			}
			if href == "" {
				buf.WriteString(inner.String())
			} else {
				buf.WriteString(`<a href="` + html.EscapeString(href) + `">` + inner.String() + "</a>")
			}
		}
	}
	return buf.String(), nil
}

func (s *ImportService) renderRun(ctx context.Context, run *docxRun, doc *docxArchive, rels map[string]docxRelationship) (string, error) {
	var buf strings.Builder

	for _, text := range run.Texts {
		buf.WriteString(html.EscapeString(text.Value))
	}
	for range run.Breaks {
		buf.WriteString("<br>")
	}
	for _, drawing := range run.Drawings {
		blips := append(drawing.InlineBlips, drawing.AnchorBlips...)
		for _, blip := range blips {
			url, err := s.storeEmbeddedImage(ctx, blip.Embed, doc, rels)
			if err != nil {
				// A broken embedded image should not sink the whole
				// document.
				logger.Warnw("docx_image_import_failed",
					"rel_id", blip.Embed,
					"error", err,
				)
				continue
			}
			if url != "" {
				buf.WriteString(`<img src="` + html.EscapeString(url) + `" alt="">`)
			}
		}
	}

	out := buf.String()
	if out == "" {
		return "", nil
	}
	if run.Props.Italic.On() {
		out = "<em>" + out + "</em>"
	}
	if run.Props.Bold.On() {
		out = "<strong>" + out + "</strong>"
	}
	return out, nil
}

func (s *ImportService) storeEmbeddedImage(ctx context.Context, relID string, doc *docxArchive, rels map[string]docxRelationship) (string, error) {
	rel, ok := rels[relID]
	if !ok {
		return "", fmt.Errorf("unknown image relationship %q", relID)
	}
	if strings.EqualFold(rel.TargetMode, "External") {
		return rel.Target, nil
	}

	target := path.Clean("word/" + strings.TrimPrefix(rel.Target, "/"))
	data, ok := doc.files[target]
	if !ok {
		return "", fmt.Errorf("missing media entry %q", target)
	}

	return s.upload.SaveBytes(ctx, data, path.Base(target), constants.UploadSceneContent)
}

func (s *ImportService) renderTable(ctx context.Context, table *docxTable, doc *docxArchive, rels map[string]docxRelationship) (string, error) {
	var buf strings.Builder
	buf.WriteString("<table>")
	for _, row := range table.Rows {
		buf.WriteString("<tr>")
		for i := range row.Cells {
			var cell strings.Builder
			for j := range row.Cells[i].Paragraphs {
				inner, err := s.renderParagraphItems(ctx, row.Cells[i].Paragraphs[j].Items, doc, rels)
				if err != nil {
					return "", err
				}
				if cell.Len() > 0 && inner != "" {
					cell.WriteString("<br>")
				}
				cell.WriteString(inner)
			}
			buf.WriteString("<td>" + cell.String() + "</td>")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</table>")
	return buf.String(), nil
}
