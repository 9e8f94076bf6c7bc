package accounts

import (
	"bytes"
	"strings"

	"github.com/tidwall/sjson"
)

// Wire names of the request payload.
const (
	fieldMode   = "mode"
	fieldLimit  = "limit"
	fieldAfter  = "after"
	fieldNames  = "search_by_names"
	fieldPhones = "search_by_phones"
	fieldCPFs   = "search_by_cpfs"
	fieldEmails = "search_by_emails"
)

// SearchRequest is the canonical JSON payload sent to the search endpoint.
// It is only obtainable from the constructors below, which guarantee it is valid.
type SearchRequest struct {
	body []byte
}

// Body returns a copy of the JSON payload.
func (r SearchRequest) Body() []byte {
	return bytes.Clone(r.body)
}

func (r SearchRequest) String() string {
	return string(r.body)
}

// NewSearchRequest validates the criteria and controls and builds the payload.
// The object holds mode, limit and after, then only the non-empty criteria in a
// fixed order; an empty criterion is left out rather than sent as []. An empty
// mode means ModeOr. Equal inputs always produce identical bytes.
func NewSearchRequest(criteria SearchCriteria, mode Mode, page Pagination) (SearchRequest, error) {
	if criteria.IsEmpty() {
		return SearchRequest{}, ErrNoCriteria
	}
	if mode == "" {
		mode = ModeOr
	}
	if err := validateVar(fieldMode, string(mode), "oneof=or and"); err != nil {
		return SearchRequest{}, err
	}
	if err := validateStruct(page); err != nil {
		return SearchRequest{}, err
	}

	body := []byte("{}")
	var err error
	if body, err = sjson.SetBytes(body, fieldMode, string(mode)); err != nil {
		return SearchRequest{}, err
	}
	if body, err = sjson.SetBytes(body, fieldLimit, page.Limit); err != nil {
		return SearchRequest{}, err
	}
	if body, err = sjson.SetBytes(body, fieldAfter, page.After); err != nil {
		return SearchRequest{}, err
	}

	for _, f := range []struct {
		key    string
		values []string
	}{
		{fieldNames, criteria.Names},
		{fieldPhones, criteria.Phones},
		{fieldCPFs, criteria.CPFs},
		{fieldEmails, criteria.Emails},
	} {
		if len(f.values) == 0 {
			continue
		}
		if body, err = sjson.SetBytes(body, f.key, f.values); err != nil {
			return SearchRequest{}, err
		}
	}

	return SearchRequest{body: body}, nil
}

// NewPhoneSearchRequest builds a single-phone search in "or" mode from offset 0.
// A blank phone is rejected: as a substring it would match every account.
func NewPhoneSearchRequest(phone string, limit int) (SearchRequest, error) {
	if strings.TrimSpace(phone) == "" {
		return SearchRequest{}, &ValidationError{Field: "phone", Message: "this field is required"}
	}
	return NewSearchRequest(SearchCriteria{Phones: []string{phone}}, ModeOr, Pagination{Limit: limit})
}

// NewEmailSearchRequest builds a single-email search in "or" mode from offset 0.
// The address must be syntactically valid.
func NewEmailSearchRequest(email string, limit int) (SearchRequest, error) {
	if err := validateVar("email", email, "required,email"); err != nil {
		return SearchRequest{}, err
	}
	return NewSearchRequest(SearchCriteria{Emails: []string{email}}, ModeOr, Pagination{Limit: limit})
}
