package editor

import (
	"errors"
	"io"
	"net/url"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lessons/contents"
	schemavalidation "github.com/goliatone/go-lessons/internal/validation"
	"golang.org/x/net/html"
)

// Tags that count as content in a Reading item even without text.
var mediaTags = map[string]struct{}{
	"img":     {},
	"video":   {},
	"audio":   {},
	"iframe":  {},
	"embed":   {},
	"object":  {},
	"picture": {},
	"svg":     {},
	"canvas":  {},
}

// ValidateItem checks that item can be committed.
func ValidateItem(item Item) error {
	if err := validation.Validate(item.Caption, validation.RuneLength(0, schemavalidation.MaxCaptionLength)); err != nil {
		return invalid(item, FieldCaption, err.Error())
	}

	switch item.Kind {
	case contents.KindReading:
		if BlankMarkup(item.Payload) {
			return invalid(item, FieldPayload, "reading content must contain text or media")
		}
	case contents.KindVideo, contents.KindImage:
		err := validation.Validate(item.Payload,
			validation.Required.Error("a url is required"),
			validation.RuneLength(0, schemavalidation.MaxMediaURLLength),
			validation.By(mediaURL),
		)
		if err != nil {
			return invalid(item, FieldPayload, err.Error())
		}
	default:
		return invalid(item, "kind", "unknown kind")
	}
	return nil
}

// BlankMarkup reports whether markup has no visible text and no embedded
// media once tags are stripped. "<p></p>", "<p><br></p>" and "&nbsp;" are blank.
func BlankMarkup(markup string) bool {
	if strings.TrimSpace(markup) == "" {
		return true
	}
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return errors.Is(tokenizer.Err(), io.EOF)
		case html.TextToken:
			if strings.TrimFunc(string(tokenizer.Text()), unicode.IsSpace) != "" {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := mediaTags[string(name)]; ok {
				return false
			}
		}
	}
}

// mediaURL accepts the payload exactly as it is submitted to the store: an
// http(s) URL with a lowercase scheme and a host, or a root-relative path.
func mediaURL(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return errors.New("must not contain whitespace")
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return errors.New("must be an http(s) url or a root-relative path")
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return errors.New("must be a valid url")
	}
	return nil
}

func invalid(item Item, field Field, reason string) *ValidationError {
	return &ValidationError{ItemID: item.ID, Kind: item.Kind, Field: field, Reason: reason}
}
