// Package scan classifies raw strings decoded from QR codes into
// credential drafts. Input is untrusted; parsing never fails, it only
// degrades to the plain-text kind.
package scan

import (
	"net/url"
	"strings"
)

// Kind tells which rule matched the scanned payload.
type Kind string

const (
	KindCredential Kind = "credential" // vault://credential?label=...&user=...&pass=...
	KindTOTP       Kind = "totp"       // otpauth://totp/Service:account?secret=...
	KindURL        Kind = "url"        // http:// or https://
	KindText       Kind = "text"       // anything else
)

const (
	credentialPrefix = "vault://credential"
	totpPrefix       = "otpauth://totp/"

	textLabel      = "QR Code Data"
	unknownService = "Unknown service"
	unknownHost    = "Unknown website"
	totpNotes      = "TOTP secret key"
	importedNotes  = "Imported from QR code: "
)

// Draft is a transient, unsaved credential produced from one scan event.
// It is consumed once into an add/update form and never persisted.
type Draft struct {
	Kind     Kind
	Label    string
	Username string
	Secret   string
	URL      string
	Notes    string
}

// Parse classifies raw with ordered, mutually exclusive rules; the first
// matching prefix wins. Missing query parameters resolve to empty strings.
func Parse(raw string) Draft {
	switch {
	case strings.HasPrefix(raw, credentialPrefix):
		return parseCredential(raw)
	case strings.HasPrefix(raw, totpPrefix):
		return parseTOTP(raw)
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return parseURL(raw)
	default:
		return Draft{
			Kind:  KindText,
			Label: textLabel,
			Notes: raw,
		}
	}
}

func parseCredential(raw string) Draft {
	query := queryParams(raw)
	return Draft{
		Kind:     KindCredential,
		Label:    query.Get("label"),
		Username: query.Get("user"),
		Secret:   query.Get("pass"),
		Notes:    query.Get("notes"),
	}
}

// parseTOTP handles the Google Authenticator form
// otpauth://totp/Service:account@host?secret=...&issuer=Service.
func parseTOTP(raw string) Draft {
	label := unknownService
	account := ""
	query := queryParams(raw)

	if u, err := url.Parse(raw); err == nil {
		path := strings.TrimPrefix(u.Path, "/")
		service, rest, found := strings.Cut(path, ":")
		if service != "" {
			label = service
		}
		if found {
			account = rest
		}
	}
	if account == "" {
		account = query.Get("issuer")
	}

	return Draft{
		Kind:     KindTOTP,
		Label:    label,
		Username: account,
		Secret:   query.Get("secret"),
		Notes:    totpNotes,
	}
}

func parseURL(raw string) Draft {
	label := unknownHost
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		label = u.Host
	}

	return Draft{
		Kind:  KindURL,
		Label: label,
		URL:   raw,
		Notes: importedNotes + raw,
	}
}

// queryParams extracts query parameters without failing on malformed
// URIs; anything unparseable just yields an empty set.
func queryParams(raw string) url.Values {
	u, err := url.Parse(raw)
	if err != nil {
		return url.Values{}
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return url.Values{}
	}
	return query
}
