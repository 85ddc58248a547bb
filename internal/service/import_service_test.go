package service

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/aangan-site/aangan-api/internal/config"
)

func newImportService(t *testing.T) *ImportService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 10 << 20
	upload, err := NewUploadService(cfg)
	if err != nil {
		t.Fatalf("upload service failed: %v", err)
	}
	return NewImportService(upload)
}

// docxUpload packs the given archive entries into a zip and wraps it in
// a parsed multipart file header, the shape the handler hands over.
func docxUpload(t *testing.T, filename string, entries map[string][]byte) *multipart.FileHeader {
	t.Helper()

	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create failed: %v", err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("zip write failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close failed: %v", err)
	}
	return multipartFile(t, filename, archive.Bytes())
}

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form failed: %v", err)
	}

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("parse form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`

func TestImportDocxHeadingsListsAndFormatting(t *testing.T) {
	svc := newImportService(t)

	documentXML := docxHeader + `<w:body>
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Courtyard Notes</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Season One</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Spices</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading3"/></w:pPr><w:r><w:t>Cardamom</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Bold</w:t></w:r><w:r><w:t> and </w:t></w:r><w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>First item</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>Second item</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Quote"/></w:pPr><w:r><w:t>Slow food only.</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>Not bold</w:t></w:r></w:p>
</w:body></w:document>`

	file := docxUpload(t, "notes.docx", map[string][]byte{
		"word/document.xml": []byte(documentXML),
	})

	html, err := svc.ImportDocx(context.Background(), file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	for _, want := range []string{
		"<h2>Courtyard Notes</h2>",
		"<h2>Season One</h2>",
		"<h3>Spices</h3>",
		"<h4>Cardamom</h4>",
		"<strong>Bold</strong> and <em>italic</em>",
		"<ul><li>First item</li><li>Second item</li></ul>",
		"<blockquote>Slow food only.</blockquote>",
		"<p>Not bold</p>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<strong>Not bold") {
		t.Fatalf("explicit false toggle rendered bold:\n%s", html)
	}
}

func TestImportDocxHyperlinksAndTables(t *testing.T) {
	svc := newImportService(t)

	documentXML := docxHeader + `<w:body>
<w:p><w:hyperlink r:id="rId1"><w:r><w:t>our menu</w:t></w:r></w:hyperlink></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Dish</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Price</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>Thali</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>250</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
</w:body></w:document>`

	relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://aangan.in/menu" TargetMode="External"/>
</Relationships>`

	file := docxUpload(t, "menu.docx", map[string][]byte{
		"word/document.xml":            []byte(documentXML),
		"word/_rels/document.xml.rels": []byte(relsXML),
	})

	html, err := svc.ImportDocx(context.Background(), file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if !strings.Contains(html, `<a href="https://aangan.in/menu"`) || !strings.Contains(html, ">our menu</a>") {
		t.Fatalf("hyperlink not rendered:\n%s", html)
	}
	for _, want := range []string{
		"<table>", "<tr>", "<td>Dish</td>", "<td>Thali</td>", "<td>250</td>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("table output missing %q:\n%s", want, html)
		}
	}
}

func TestImportDocxEmbeddedImage(t *testing.T) {
	t.Chdir(t.TempDir())
	svc := newImportService(t)

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}

	documentXML := docxHeader + `<w:body>
<w:p><w:r><w:drawing><wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData><pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:blipFill><a:blip r:embed="rId2"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>
</w:body></w:document>`

	relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`

	file := docxUpload(t, "photo.docx", map[string][]byte{
		"word/document.xml":            []byte(documentXML),
		"word/_rels/document.xml.rels": []byte(relsXML),
		"word/media/image1.png":        img.Bytes(),
	})

	html, err := svc.ImportDocx(context.Background(), file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(html, `<img src="/uploads/content/`) {
		t.Fatalf("embedded image not stored:\n%s", html)
	}
}

func TestImportDocxRejectsInvalidInput(t *testing.T) {
	svc := newImportService(t)

	if _, err := svc.ImportDocx(context.Background(), multipartFile(t, "notes.txt", []byte("plain"))); err != ErrInvalidDocx {
		t.Fatalf("expected ErrInvalidDocx for wrong extension, got %v", err)
	}
	if _, err := svc.ImportDocx(context.Background(), multipartFile(t, "notes.docx", []byte("not a zip"))); err != ErrInvalidDocx {
		t.Fatalf("expected ErrInvalidDocx for non-zip payload, got %v", err)
	}

	empty := docxUpload(t, "empty.docx", map[string][]byte{
		"word/other.xml": []byte("<x/>"),
	})
	if _, err := svc.ImportDocx(context.Background(), empty); err != ErrInvalidDocx {
		t.Fatalf("expected ErrInvalidDocx when document.xml is missing, got %v", err)
	}
}
