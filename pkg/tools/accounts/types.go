package accounts

// Mode is how multiple supplied criteria combine on the remote side.
type Mode string

const (
	// ModeOr matches accounts satisfying any supplied criterion.
	ModeOr Mode = "or"
	// ModeAnd matches accounts satisfying every supplied criterion.
	ModeAnd Mode = "and"
)

const (
	MinLimit = 1
	MaxLimit = 50

	// DefaultLimit applies to search_personal_accounts.
	DefaultLimit = 50
	// DefaultConvenienceLimit applies to search_by_phone and search_by_email.
	DefaultConvenienceLimit = 1
)

// SearchCriteria holds the optional search filters. At least one must be non-empty.
type SearchCriteria struct {
	Names  []string
	Phones []string
	CPFs   []string
	Emails []string
}

// IsEmpty reports whether no criterion has any value.
func (c SearchCriteria) IsEmpty() bool {
	return len(c.Names) == 0 && len(c.Phones) == 0 && len(c.CPFs) == 0 && len(c.Emails) == 0
}

// Pagination is offset based: return at most Limit records, skipping After.
type Pagination struct {
	Limit int `json:"limit" validate:"gte=1,lte=50"`
	After int `json:"after" validate:"gte=0"`
}

// --- Argument Structs for Child Tools ---

// SearchPersonalAccountsArgs defines the arguments for the search_personal_accounts tool.
// Limit and After are pointers so an omitted value can be told apart from zero.
type SearchPersonalAccountsArgs struct {
	SearchByNames  []string `json:"search_by_names,omitempty" jsonschema:"description=Names to search for (substring search; case-insensitive)."`
	SearchByPhones []string `json:"search_by_phones,omitempty" jsonschema:"description=Phone numbers to search for (substring search)."`
	SearchByCPFs   []string `json:"search_by_cpfs,omitempty" jsonschema:"description=CPF numbers to search for (exact match)."`
	SearchByEmails []string `json:"search_by_emails,omitempty" jsonschema:"description=Email addresses to search for (exact match; case-insensitive)."`
	Mode           Mode     `json:"mode,omitempty" jsonschema:"enum=or,enum=and,default=or,description=Search mode: 'or' returns accounts matching any criteria and 'and' returns accounts matching all criteria."`
	Limit          *int     `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=50,description=Maximum number of results to return (1-50)."`
	After          *int     `json:"after,omitempty" jsonschema:"minimum=0,default=0,description=Number of results to skip (for pagination)."`
}

// SearchByPhoneArgs defines the arguments for the search_by_phone tool.
type SearchByPhoneArgs struct {
	Phone string `json:"phone" jsonschema:"required,description=Phone number to search for."`
	Limit *int   `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=1,description=Maximum number of results to return."`
}

// SearchByEmailArgs defines the arguments for the search_by_email tool.
type SearchByEmailArgs struct {
	Email string `json:"email" jsonschema:"required,format=email,description=Email address to search for."`
	Limit *int   `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=1,description=Maximum number of results to return."`
}

func (a SearchPersonalAccountsArgs) criteria() SearchCriteria {
	return SearchCriteria{
		Names:  a.SearchByNames,
		Phones: a.SearchByPhones,
		CPFs:   a.SearchByCPFs,
		Emails: a.SearchByEmails,
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
