package mailbox

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/poiesic/maildex/core"
)

// LoadDirectory reads every .eml file in dir into a document. Files that
// fail to parse are skipped with a warning; the rest of the directory still
// loads. The document ID is the Message-Id header when present, otherwise
// the file name.
func LoadDirectory(dir string) ([]*core.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading mailbox directory: %w", err)
	}

	var docs []*core.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".eml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("skipping unreadable message file", "path", path, "err", err)
			continue
		}

		doc, err := ReadMessage(f, strings.TrimSuffix(entry.Name(), ".eml"))
		f.Close()
		if err != nil {
			slog.Warn("skipping unparsable message file", "path", path, "err", err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// ReadMessage parses a single RFC 5322 message into a document. fallbackID
// is used when the message carries no Message-Id header.
func ReadMessage(r io.Reader, fallbackID string) (*core.Document, error) {
	reader, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}

	doc := &core.Document{Id: fallbackID}

	if id, err := reader.Header.MessageID(); err == nil && id != "" {
		doc.Id = id
	}
	if subject, err := reader.Header.Subject(); err == nil {
		doc.Subject = subject
	}
	if fromList, err := reader.Header.AddressList("From"); err == nil && len(fromList) > 0 {
		doc.From = fromList[0].Address
	}
	if date, err := reader.Header.Date(); err == nil {
		doc.Date = date
	}
	doc.Important = isImportant(reader.Header)

	// Concatenate the inline text/plain parts; everything else is noise to
	// a token index.
	var body strings.Builder
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		mediaType, _, _ := header.ContentType()
		if mediaType != "" && !strings.HasPrefix(mediaType, "text/plain") {
			continue
		}

		text, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.Write(text)
	}
	doc.Body = strings.TrimSpace(body.String())

	return doc, nil
}

// isImportant reads the common priority headers. X-Priority 1 and 2 and
// Importance high both mean the sender flagged the message.
func isImportant(header mail.Header) bool {
	priority := strings.TrimSpace(header.Get("X-Priority"))
	if strings.HasPrefix(priority, "1") || strings.HasPrefix(priority, "2") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(header.Get("Importance")), "high")
}
