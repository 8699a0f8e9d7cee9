package viewsync

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Popup card limits.
const (
	MaxPopupTitles       = 2
	MaxPopupAddressRunes = 80
)

// Link labels.
const (
	PopupLinkLabel = "View Jobs"
	ListLinkLabel  = "Visit Career Page"
)

// Tag tones by experience level or work mode.
const (
	ToneEntry   = "green"
	ToneMid     = "blue"
	ToneSenior  = "purple"
	ToneRemote  = "cyan"
	ToneHybrid  = "yellow"
	ToneOnSite  = "orange"
	ToneDefault = "gray"
)

// PopupCard is the compact, read-only projection shown in a marker popup.
// It carries no tags and nothing that can change filter state.
type PopupCard struct {
	Name          string   `json:"name"`
	Industry      string   `json:"industry"`
	Address       string   `json:"address"`
	PositionLabel string   `json:"positionLabel"`
	Titles        []string `json:"titles"`
	MoreLabel     string   `json:"moreLabel,omitempty"`
	CareerURL     string   `json:"careerUrl"`
	LinkLabel     string   `json:"linkLabel"`
}

// TagChip is a tag rendered in the list view. Clicking it toggles the tag.
type TagChip struct {
	Label      string `json:"label"`
	Tone       string `json:"tone"`
	Active     bool   `json:"active"`
	Toggleable bool   `json:"toggleable"`
}

// PostingView is one job posting inside a list card.
type PostingView struct {
	Title string    `json:"title"`
	Tags  []TagChip `json:"tags"`
}

// ListCard is the full projection shown in the list view.
type ListCard struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Industry       string        `json:"industry"`
	Address        string        `json:"address"`
	CareerURL      string        `json:"careerUrl"`
	LinkLabel      string        `json:"linkLabel"`
	PositionsLabel string        `json:"positionsLabel"`
	Postings       []PostingView `json:"postings"`
	OnMap          bool          `json:"onMap"`
}

// NewPopupCard builds the compact card for e.
func NewPopupCard(e *domain.Employer) PopupCard {
	n := e.PositionCount()
	titles := make([]string, 0, min(n, MaxPopupTitles))
	for i := 0; i < n && i < MaxPopupTitles; i++ {
		titles = append(titles, e.JobPostings[i].Title)
	}

	card := PopupCard{
		Name:          e.Name,
		Industry:      e.Industry,
		Address:       TruncateRunes(e.Address, MaxPopupAddressRunes),
		PositionLabel: PositionLabel(n),
		Titles:        titles,
		CareerURL:     e.CareerURL,
		LinkLabel:     PopupLinkLabel,
	}
	if n > MaxPopupTitles {
		card.MoreLabel = fmt.Sprintf("+%d more", n-MaxPopupTitles)
	}
	return card
}

// NewListCard builds the full card for e. Tags present in state are marked
// active by exact match, the same comparison toggling uses.
func NewListCard(e *domain.Employer, state domain.FilterState) ListCard {
	postings := make([]PostingView, 0, len(e.JobPostings))
	for _, p := range e.JobPostings {
		chips := make([]TagChip, 0, len(p.Tags))
		for _, tag := range p.Tags {
			chips = append(chips, TagChip{
				Label:      tag,
				Tone:       TagTone(tag),
				Active:     state.HasTag(tag),
				Toggleable: true,
			})
		}
		postings = append(postings, PostingView{Title: p.Title, Tags: chips})
	}

	return ListCard{
		ID:             e.ID,
		Name:           e.Name,
		Industry:       e.Industry,
		Address:        e.Address,
		CareerURL:      e.CareerURL,
		LinkLabel:      ListLinkLabel,
		PositionsLabel: fmt.Sprintf("Open Positions (%d)", len(e.JobPostings)),
		Postings:       postings,
		OnMap:          e.HasValidCoordinates(),
	}
}

// ListCards builds list cards for every employer, in order.
func ListCards(employers []domain.Employer, state domain.FilterState) []ListCard {
	out := make([]ListCard, 0, len(employers))
	for i := range employers {
		out = append(out, NewListCard(&employers[i], state))
	}
	return out
}

// TagTone picks a colour class for a tag. Experience levels match by
// substring, work modes by equality, both case-insensitively.
func TagTone(tag string) string {
	t := strings.ToLower(tag)
	switch {
	case strings.Contains(t, "entry"):
		return ToneEntry
	case strings.Contains(t, "mid"):
		return ToneMid
	case strings.Contains(t, "senior"):
		return ToneSenior
	case t == "remote":
		return ToneRemote
	case t == "hybrid":
		return ToneHybrid
	case t == "on-site":
		return ToneOnSite
	default:
		return ToneDefault
	}
}

// PositionLabel returns "1 open position" or "N open positions".
func PositionLabel(n int) string {
	if n == 1 {
		return "1 open position"
	}
	return fmt.Sprintf("%d open positions", n)
}

// CountLabel returns "1 company found" or "N companies found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 company found"
	}
	return fmt.Sprintf("%d companies found", n)
}

// TruncateRunes shortens s to at most limit runes, ending with an ellipsis.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:limit-1]), " ,") + "…"
}
