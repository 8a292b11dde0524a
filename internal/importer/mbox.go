package importer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/emersion/go-mbox"
	"github.com/emersion/go-vcard"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/logging"
)

var vcardTypes = map[string]bool{
	"text/vcard":     true,
	"text/x-vcard":   true,
	"text/directory": true,
}

// FromMbox extracts every vCard attached to the messages of an mbox
// archive. Messages and parts that cannot be parsed are logged and skipped.
func FromMbox(r io.Reader) ([]vcard.Card, error) {
	log := logging.WithFields(logging.String("component", "importer"), logging.String("source", "mbox"))

	var cards []vcard.Card
	reader := mbox.NewReader(r)
	for i := 0; ; i++ {
		msgReader, err := reader.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cards, fmt.Errorf("read mbox message %d: %w", i, err)
		}

		msg, err := mail.ReadMessage(msgReader)
		if err != nil {
			log.Warn("Failed to parse message", logging.Int("message", i), logging.Err(err))
			continue
		}

		found := messageCards(msg, log.WithFields(logging.Int("message", i)))
		cards = append(cards, found...)
	}
	return cards, nil
}

// messageCards walks the MIME tree of msg and decodes the vCard parts.
func messageCards(msg *mail.Message, log logging.Logger) []vcard.Card {
	var cards []vcard.Card

	// recursive entity processor
	var processEntity func(header interface{ Get(string) string }, body io.Reader)
	processEntity = func(header interface{ Get(string) string }, body io.Reader) {
		ctype, params, err := mime.ParseMediaType(header.Get("Content-Type"))
		if err != nil {
			ctype = "text/plain"
		}

		// handle multipart recursively
		if strings.HasPrefix(ctype, "multipart/") {
			mr := multipart.NewReader(body, params["boundary"])
			for {
				p, err := mr.NextPart()
				if err == io.EOF {
					break
				}
				if err != nil {
					log.Warn("Error reading multipart body", logging.Err(err))
					break
				}
				processEntity(p.Header, p)
			}
			return
		}

		if !isCardPart(ctype, header) {
			return
		}

		data, err := io.ReadAll(transferDecoder(header, body))
		if err != nil {
			log.Warn("Failed to decode vCard part", logging.Err(err))
			return
		}
		found, err := contact.ReadCards(charsetReader(params["charset"], bytes.NewReader(data)))
		if err != nil {
			log.Warn("Failed to parse vCard part", logging.Err(err))
			return
		}
		cards = append(cards, found...)
	}

	processEntity(msg.Header, msg.Body)
	return cards
}

// isCardPart reports whether a part carries a vCard, by media type or by a
// .vcf attachment name.
func isCardPart(ctype string, header interface{ Get(string) string }) bool {
	if vcardTypes[ctype] {
		return true
	}
	if _, dispParams, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		if strings.HasSuffix(strings.ToLower(dispParams["filename"]), ".vcf") {
			return true
		}
	}
	_, params, _ := mime.ParseMediaType(header.Get("Content-Type"))
	return strings.HasSuffix(strings.ToLower(params["name"]), ".vcf")
}

func transferDecoder(header interface{ Get(string) string }, body io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(header.Get("Content-Transfer-Encoding"))) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		return quotedprintable.NewReader(body)
	default:
		// 7bit, 8bit, binary -> no wrapper
		return body
	}
}

func charsetReader(charset string, input io.Reader) io.Reader {
	if charset == "" {
		return input
	}
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return input
	}
	return transform.NewReader(input, enc.NewDecoder())
}
