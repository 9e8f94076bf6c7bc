// Package accounts implements the personal accounts search tools: criteria
// validation and request building, the call to the remote search endpoint, and
// the rendering of every outcome as a single text result.
package accounts

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaessahbaoui/accounts-toolkit/toolkit"
)

// Tool and parent names exposed to agent runtimes.
const (
	ParentName = "personal_accounts"

	ToolSearchPersonalAccounts = "search_personal_accounts"
	ToolSearchByPhone          = "search_by_phone"
	ToolSearchByEmail          = "search_by_email"
)

// Service holds the handlers of the three search tools. Invocations share no
// state besides the Searcher.
type Service struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewService creates a Service. A nil logger discards logs.
func NewService(searcher Searcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{searcher: searcher, logger: logger}
}

// SearchPersonalAccounts searches by any combination of names, phones, CPFs
// and emails. Defaults: mode "or", limit 50, after 0.
func (s *Service) SearchPersonalAccounts(ctx context.Context, args SearchPersonalAccountsArgs) (string, error) {
	page := Pagination{
		Limit: intOr(args.Limit, DefaultLimit),
		After: intOr(args.After, 0),
	}
	req, err := NewSearchRequest(args.criteria(), args.Mode, page)
	return s.run(ctx, ToolSearchPersonalAccounts, bulkPresentation(), req, err), nil
}

// SearchByPhone searches for a single phone number. Default limit 1.
func (s *Service) SearchByPhone(ctx context.Context, args SearchByPhoneArgs) (string, error) {
	req, err := NewPhoneSearchRequest(args.Phone, intOr(args.Limit, DefaultConvenienceLimit))
	return s.run(ctx, ToolSearchByPhone, phonePresentation(args.Phone), req, err), nil
}

// SearchByEmail searches for a single email address. Default limit 1.
func (s *Service) SearchByEmail(ctx context.Context, args SearchByEmailArgs) (string, error) {
	req, err := NewEmailSearchRequest(args.Email, intOr(args.Limit, DefaultConvenienceLimit))
	return s.run(ctx, ToolSearchByEmail, emailPresentation(args.Email), req, err), nil
}

// run sends a built request, or skips the network entirely when building failed,
// and renders the outcome.
func (s *Service) run(ctx context.Context, tool string, p Presentation, req SearchRequest, buildErr error) string {
	logger := s.logger.With(
		slog.String("tool", tool),
		slog.String("invocation_id", uuid.NewString()),
	)

	if buildErr != nil {
		outcome := Classify(Records{}, buildErr)
		logger.WarnContext(ctx, "search rejected", slog.Any("error", buildErr))
		return p.Render(outcome)
	}

	start := time.Now()
	records, err := s.searcher.Search(ctx, req)
	outcome := Classify(records, err)
	logOutcome(ctx, logger, outcome, time.Since(start))
	return p.Render(outcome)
}

func logOutcome(ctx context.Context, logger *slog.Logger, o Outcome, elapsed time.Duration) {
	dur := slog.Duration("duration", elapsed)
	switch o := o.(type) {
	case Success:
		logger.InfoContext(ctx, "search completed", slog.Int("records", o.Records.Len()), dur)
	case Empty:
		logger.InfoContext(ctx, "search completed", slog.Int("records", 0), dur)
	case HTTPFailure:
		logger.WarnContext(ctx, "search endpoint returned error status", slog.Int("status", o.Status), dur)
	case TransportFailure:
		logger.ErrorContext(ctx, "search transport failure", slog.Any("error", o.Err), dur)
	case Rejected:
		logger.WarnContext(ctx, "search rejected", slog.Any("error", o.Err))
	}
}

// Parent groups the three tools under the personal_accounts parent.
func (s *Service) Parent() toolkit.Parent {
	return toolkit.NewParent(
		ParentName,
		"Searches the personal accounts dataset by name, phone, CPF or email.",
		toolkit.NewChild(ToolSearchPersonalAccounts,
			"Search personal accounts by names, phones, CPFs and/or emails. Combine criteria with mode 'or' (any) or 'and' (all); paginate with limit and after.",
			s.SearchPersonalAccounts),
		toolkit.NewChild(ToolSearchByPhone,
			"Quick search for personal accounts by a single phone number.",
			s.SearchByPhone),
		toolkit.NewChild(ToolSearchByEmail,
			"Quick search for personal accounts by a single email address.",
			s.SearchByEmail),
	)
}
