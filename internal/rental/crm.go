package rental

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type LeadParams struct {
	Name  string
	Email string
	Phone string
	Stage string
	Notes string
}

func (p *LeadParams) normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
	p.Stage = strings.TrimSpace(p.Stage)

	if p.Stage == "" {
		p.Stage = DefaultLeadStage
	}

	if p.Name == "" {
		return invalid("lead name is required")
	}

	return nil
}

func (s *Service) CreateLead(ctx context.Context, params LeadParams) (*Lead, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	var created Lead

	err := s.mutate(ctx, func(st *State) error {
		created = Lead{
			ID:    nextID(st.Data.Leads, func(l Lead) int64 { return l.ID }),
			Name:  params.Name,
			Email: params.Email,
			Phone: params.Phone,
			Stage: params.Stage,
			Notes: params.Notes,
		}
		st.Data.Leads = append(st.Data.Leads, created)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) UpdateLead(ctx context.Context, id int64, params LeadParams) (*Lead, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	var updated Lead

	err := s.mutate(ctx, func(st *State) error {
		l, ok := st.Data.Lead(id)
		if !ok {
			return notFound("lead", id)
		}

		l.Name = params.Name
		l.Email = params.Email
		l.Phone = params.Phone
		l.Stage = params.Stage
		l.Notes = params.Notes
		updated = *l

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Leads(ctx context.Context) ([]Lead, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return st.Data.Leads, nil
}

type MessageParams struct {
	Subject    string
	Body       string
	Recipients []string
}

// SendMessage stores a message from actor to the given recipient groups
// ("all", a role, or a pluralized role).
func (s *Service) SendMessage(ctx context.Context, actor User, params MessageParams) (*Message, error) {
	subject := strings.TrimSpace(params.Subject)
	if subject == "" {
		return nil, invalid("subject is required")
	}

	recipients := make([]string, 0, len(params.Recipients))
	for _, r := range params.Recipients {
		r = strings.ToLower(strings.TrimSpace(r))
		if !validRecipient(r) {
			return nil, invalid("unknown recipient %q", r)
		}

		recipients = append(recipients, r)
	}

	if len(recipients) == 0 {
		return nil, invalid("at least one recipient is required")
	}

	var sent Message

	err := s.mutate(ctx, func(st *State) error {
		sent = Message{
			ID:         nextID(st.Data.Messages, func(m Message) int64 { return m.ID }),
			SenderID:   actor.ID,
			Subject:    subject,
			Body:       params.Body,
			Recipients: recipients,
			Date:       s.now().UTC(),
		}
		st.Data.Messages = append(st.Data.Messages, sent)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sent, nil
}

// Messages lists the messages addressed to actor, newest first.
func (s *Service) Messages(ctx context.Context, actor User) ([]Message, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	messages := VisibleMessages(actor, st.Data.Messages)
	slices.SortStableFunc(messages, func(a, b Message) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})

	return messages, nil
}

type FileParams struct {
	Name        string
	Description string
	Tags        string
}

// SplitTags turns a comma separated tag list into trimmed, non-empty tags.
func SplitTags(tags string) []string {
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}

	return out
}

func (s *Service) CreateFile(ctx context.Context, params FileParams) (*File, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, invalid("file name is required")
	}

	var created File

	err := s.mutate(ctx, func(st *State) error {
		created = File{
			ID:          nextID(st.Data.Files, func(f File) int64 { return f.ID }),
			UploadID:    uuid.NewString(),
			Name:        name,
			Description: strings.TrimSpace(params.Description),
			Tags:        SplitTags(params.Tags),
			Date:        s.today(),
		}
		st.Data.Files = append(st.Data.Files, created)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) UpdateFile(ctx context.Context, id int64, params FileParams) (*File, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, invalid("file name is required")
	}

	var updated File

	err := s.mutate(ctx, func(st *State) error {
		f, ok := st.Data.File(id)
		if !ok {
			return notFound("file", id)
		}

		f.Name = name
		f.Description = strings.TrimSpace(params.Description)
		f.Tags = SplitTags(params.Tags)
		updated = *f

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Files(ctx context.Context) ([]File, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return st.Data.Files, nil
}
