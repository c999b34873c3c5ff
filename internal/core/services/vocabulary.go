package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure VocabularyService implements the interface.
var _ driving.VocabularyService = (*VocabularyService)(nil)

// baseTerm is a built-in vocabulary entry.
type baseTerm struct {
	text   string
	origin domain.CulturalOrigin
}

// baseTerms is the curated starter vocabulary.
var baseTerms = []baseTerm{
	// Dishes
	{"ramen", domain.OriginJapanese},
	{"pho", domain.OriginSoutheastAsian},
	{"shawarma", domain.OriginMiddleEastern},
	{"birria", domain.OriginMexican},
	{"tacos", domain.OriginMexican},
	{"burrito", domain.OriginMexican},
	{"sushi", domain.OriginJapanese},
	{"dumplings", domain.OriginChinese},
	{"pad thai", domain.OriginSoutheastAsian},
	{"bibimbap", domain.OriginKorean},
	{"pizza", domain.OriginItalian},
	{"pasta", domain.OriginItalian},
	{"lasagna", domain.OriginItalian},

	// Ingredients
	{"garlic", domain.OriginOther},
	{"ginger", domain.OriginOther},
	{"miso", domain.OriginJapanese},
	{"gochujang", domain.OriginKorean},
	{"kimchi", domain.OriginKorean},
	{"tahini", domain.OriginMiddleEastern},
	{"chickpeas", domain.OriginMiddleEastern},
	{"lentils", domain.OriginIndian},
	{"tofu", domain.OriginChinese},
	{"cottage cheese", domain.OriginAmericanCanadian},
	{"greek yogurt", domain.OriginOther},

	// Drinks and desserts
	{"matcha", domain.OriginJapanese},
	{"boba", domain.OriginChinese},
	{"tiramisu", domain.OriginItalian},

	// Tools and styles
	{"air fryer", domain.OriginAmericanCanadian},
	{"slow cooker", domain.OriginAmericanCanadian},
	{"meal prep", domain.OriginAmericanCanadian},
}

// candidateStopwords are dropped before n-gram counting.
var candidateStopwords = toSet(
	"the", "and", "but", "for", "with", "from", "are", "was", "were",
	"been", "being", "best", "also", "used", "something", "now", "get",
	"want", "add", "had", "there", "it", "this", "that", "have", "all",
	"some", "not", "like", "about", "any", "these", "those", "ideas",
	"anyone", "other", "making", "you", "they", "she", "them", "make",
	"time", "out", "has", "use", "think", "then", "over", "still",
	"things", "your", "our", "their", "his", "her", "what", "why", "how",
	"when", "where", "can", "could", "should", "would", "will", "just",
	"really", "very", "more", "most", "less", "help", "need", "question",
	"advice", "food", "cook", "cooking", "recipe", "recipes", "eat", "amp",
	"long", "same", "ate", "into", "good", "one", "way", "taste", "pan",
	"high", "oven", "looking", "using", "fresh", "paste", "anything",
	"store", "before", "love", "too", "after", "dry", "sure", "trying",
	"maybe", "few", "cooked", "than", "put", "minutes", "cup", "thank",
	"first", "does", "getting", "stock", "well", "wondering", "wanted",
	"top", "another", "lot", "hot", "added", "suggestions", "bit", "which",
	"day", "much", "work", "baking", "dish", "thanks", "different", "got",
	"hours", "usual", "through", "tried", "heat", "substitute", "home",
	"until", "cast", "iron", "here", "take", "only", "bought", "everything",
	"else", "little", "com", "easy", "new", "because", "stove",
	"recommendations", "done", "never", "etc", "freezer", "fridge", "week",
	"great", "since", "start", "simple", "bad", "wasn", "last", "set",
	"buy", "https", "didn", "ingredients", "tsp", "found", "every", "next",
	"year", "part", "pot", "ever", "small", "basically", "frozen", "canned",
	"cut", "style", "hour", "decided", "instead", "texture", "doesn",
	"usually", "stuff", "keep", "able", "finish", "look", "everyone",
	"always", "people", "try", "please", "though", "while", "even", "going",
	"however", "idea", "prep", "makes", "spray", "kitchen", "bag", "doing",
	"freeze", "kind", "cooker", "chops", "bottom", "without", "said",
	"online", "pans", "pieces", "turn", "worth", "enough", "www", "dinner",
	"breakfast", "seems", "heavy", "thinking",
)

// VocabularyService manages the tracked term list.
type VocabularyService struct {
	termStore driven.TermStore
	docStore  driven.DocumentStore
	stopTerms []string
	now       func() time.Time
}

// NewVocabularyService creates a vocabulary service. Stop terms are the
// ones deactivated by Seed on request.
func NewVocabularyService(
	termStore driven.TermStore,
	docStore driven.DocumentStore,
	settings domain.MatchingSettings,
) *VocabularyService {
	return &VocabularyService{
		termStore: termStore,
		docStore:  docStore,
		stopTerms: settings.StopTerms,
		now:       time.Now,
	}
}

// SetClock overrides the reference time used by Candidates.
func (s *VocabularyService) SetClock(now func() time.Time) {
	s.now = now
}

// Import reads one term per line from r. Blank lines and lines starting
// with '#' are skipped. A line may carry an origin after a comma, as in
// "bibimbap,korean". Existing inactive terms are reactivated unless the
// import itself is inactive.
func (s *VocabularyService) Import(
	ctx context.Context, r io.Reader, opts driving.ImportOptions,
) (domain.ImportReport, error) {
	report := domain.ImportReport{DryRun: opts.DryRun}
	makeActive := !opts.Inactive

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			report.SkippedBlank++
			continue
		}
		if strings.HasPrefix(line, "#") {
			report.SkippedComment++
			continue
		}

		text, origin := parseTermLine(line)
		if text == "" {
			report.SkippedBlank++
			continue
		}

		existing, err := s.termStore.GetByText(ctx, text)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return report, fmt.Errorf("get term %q: %w", text, err)
		}

		switch {
		case existing == nil:
			report.Created++
			if opts.DryRun {
				continue
			}
			term := &domain.Term{Text: text, Active: makeActive, Origin: origin}
			if _, err := s.termStore.Save(ctx, term); err != nil {
				return report, fmt.Errorf("save term %q: %w", text, err)
			}
		case makeActive && !existing.Active:
			report.Reactivated++
			if opts.DryRun {
				continue
			}
			if err := s.termStore.SetActive(ctx, existing.ID, true); err != nil {
				return report, fmt.Errorf("activate term %q: %w", text, err)
			}
		default:
			report.Unchanged++
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read terms: %w", err)
	}

	logger.Info("Import: created=%d reactivated=%d unchanged=%d",
		report.Created, report.Reactivated, report.Unchanged)
	return report, nil
}

// Seed installs the built-in vocabulary.
func (s *VocabularyService) Seed(ctx context.Context, opts driving.SeedOptions) (domain.SeedReport, error) {
	var report domain.SeedReport

	if opts.Wipe {
		all, err := s.termStore.List(ctx, domain.TermFilter{IncludeInactive: true})
		if err != nil {
			return report, fmt.Errorf("list terms: %w", err)
		}
		for i := range all {
			if err := s.termStore.Delete(ctx, all[i].ID); err != nil {
				return report, fmt.Errorf("delete term %q: %w", all[i].Text, err)
			}
			report.Wiped++
		}
		logger.Warn("Wiped %d existing terms", report.Wiped)
	}

	for _, bt := range baseTerms {
		existing, err := s.termStore.GetByText(ctx, bt.text)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return report, fmt.Errorf("get term %q: %w", bt.text, err)
		}
		if existing == nil {
			term := &domain.Term{Text: bt.text, Active: true, Origin: bt.origin, OriginConfidence: 1}
			if _, err := s.termStore.Save(ctx, term); err != nil {
				return report, fmt.Errorf("save term %q: %w", bt.text, err)
			}
			report.Created++
			continue
		}
		if !existing.Active {
			if err := s.termStore.SetActive(ctx, existing.ID, true); err != nil {
				return report, fmt.Errorf("activate term %q: %w", bt.text, err)
			}
			report.Reactivated++
		}
	}

	if opts.DeactivateStops {
		for _, stop := range s.stopTerms {
			text := domain.CanonicalTermText(stop)
			if text == "" {
				continue
			}
			existing, err := s.termStore.GetByText(ctx, text)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return report, fmt.Errorf("get term %q: %w", text, err)
			}
			if existing == nil {
				if _, err := s.termStore.Save(ctx, &domain.Term{Text: text, Active: false}); err != nil {
					return report, fmt.Errorf("save term %q: %w", text, err)
				}
				continue
			}
			if existing.Active {
				if err := s.termStore.SetActive(ctx, existing.ID, false); err != nil {
					return report, fmt.Errorf("deactivate term %q: %w", text, err)
				}
				report.StopDeactivated++
			}
		}
	}

	return report, nil
}

// List returns terms matching filter, ordered by text.
func (s *VocabularyService) List(ctx context.Context, filter domain.TermFilter) ([]domain.Term, error) {
	terms, err := s.termStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// SetActive activates or deactivates the term with the given text.
func (s *VocabularyService) SetActive(ctx context.Context, text string, active bool) (*domain.Term, error) {
	canonical := domain.CanonicalTermText(text)
	if canonical == "" {
		return nil, fmt.Errorf("%w: term text is empty", domain.ErrInvalidInput)
	}
	term, err := s.termStore.GetByText(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("get term %q: %w", canonical, err)
	}
	if term.Active == active {
		return term, nil
	}
	if err := s.termStore.SetActive(ctx, term.ID, active); err != nil {
		return nil, fmt.Errorf("update term %q: %w", canonical, err)
	}
	term.Active = active
	return term, nil
}

// Candidates suggests new vocabulary from frequent n-grams in recent posts.
// Tokens shorter than three characters, numbers and stopwords are dropped
// before n-grams are formed.
func (s *VocabularyService) Candidates(
	ctx context.Context, opts domain.CandidateOptions,
) (domain.CandidateReport, error) {
	opts = resolveCandidateOptions(opts)
	var report domain.CandidateReport

	since := windowStart(s.now().UTC(), opts.Days)
	docs, err := s.docStore.ListInWindow(ctx, domain.WindowQuery{Since: since})
	if err != nil {
		return report, fmt.Errorf("list documents in window: %w", err)
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	if len(docs) > opts.LimitPosts {
		docs = docs[:opts.LimitPosts]
	}

	counts := make(map[string]int)
	for i := range docs {
		report.Scanned++
		tokens := candidateTokens(docs[i].Text())
		if len(tokens) == 0 {
			continue
		}

		weight := 1
		if opts.WeightByEngagement {
			weight = engagementWeight(docs[i].Score, docs[i].Comments)
		}

		for n := 1; n <= opts.MaxNgram; n++ {
			for j := 0; j+n <= len(tokens); j++ {
				counts[strings.Join(tokens[j:j+n], " ")] += weight
			}
		}
	}

	for text, c := range counts {
		if c >= opts.MinCount {
			report.Candidates = append(report.Candidates, domain.Candidate{Text: text, Count: c})
		}
	}
	sort.Slice(report.Candidates, func(i, j int) bool {
		a, b := report.Candidates[i], report.Candidates[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Text < b.Text
	})
	if len(report.Candidates) > opts.Top {
		report.Candidates = report.Candidates[:opts.Top]
	}

	logger.Debug("Scanned %d posts, %d candidates", report.Scanned, len(report.Candidates))
	return report, nil
}

// parseTermLine splits "text[,origin]" into canonical text and origin.
func parseTermLine(line string) (string, domain.CulturalOrigin) {
	text, originText, _ := strings.Cut(line, ",")
	return domain.CanonicalTermText(text), domain.ParseCulturalOrigin(originText)
}

func resolveCandidateOptions(opts domain.CandidateOptions) domain.CandidateOptions {
	def := domain.DefaultCandidateOptions()
	if opts.Days <= 0 {
		opts.Days = def.Days
	}
	if opts.LimitPosts <= 0 {
		opts.LimitPosts = def.LimitPosts
	}
	if opts.Top <= 0 {
		opts.Top = def.Top
	}
	if opts.MinCount <= 0 {
		opts.MinCount = def.MinCount
	}
	if opts.MaxNgram <= 0 {
		opts.MaxNgram = def.MaxNgram
	}
	if opts.MaxNgram > 3 {
		opts.MaxNgram = 3
	}
	return opts
}

func candidateTokens(text string) []string {
	all := Tokenize(text)
	kept := all[:0]
	for _, tok := range all {
		if len(tok) < 3 || isNumeric(tok) {
			continue
		}
		if _, stop := candidateStopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// engagementWeight is 1 plus one step per 50 points and per 25 comments,
// capped at 6.
func engagementWeight(score, comments int) int {
	bonus := int(nonNegative(score))/50 + int(nonNegative(comments))/25
	if bonus > 5 {
		bonus = 5
	}
	return 1 + bonus
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
