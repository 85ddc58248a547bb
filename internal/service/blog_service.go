package service

import (
	"encoding/json"
	"html"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/aangan-site/aangan-api/internal/constants"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/repository"

	slugify "github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

const excerptMaxRunes = 180

// BlogService handles blog content and placement.
type BlogService struct {
	repo        repository.BlogRepository
	settingRepo repository.SettingRepository
	stripPolicy *bluemonday.Policy
}

// NewBlogService creates a blog service.
func NewBlogService(repo repository.BlogRepository, settingRepo repository.SettingRepository) *BlogService {
	return &BlogService{
		repo:        repo,
		settingRepo: settingRepo,
		stripPolicy: bluemonday.StrictPolicy(),
	}
}

// CreateBlogInput is the payload for creating a post. An empty Slug is
// derived from the title.
type CreateBlogInput struct {
	Title        string
	Slug         string
	HTML         string
	MinutesRead  int
	Categories   []string
	ThumbnailURL string
	Placement    string
	IsFeatured   bool
	PublishedAt  *time.Time
}

// UpdateBlogInput is the payload for a partial post update. Nil fields
// are left untouched; in particular a title edit never moves the slug,
// only an explicit Slug does.
type UpdateBlogInput struct {
	Title        *string
	Slug         *string
	HTML         *string
	MinutesRead  *int
	Categories   []string
	ThumbnailURL *string
	IsFeatured   *bool
	PublishedAt  *time.Time
}

// PlacementInput is the payload for a placement-only write. Nil fields
// are left untouched; at least one must be present.
type PlacementInput struct {
	Placement    *string
	IsFeatured   *bool
	MonthlyOrder []uint
}

// BlogSections is the public landing-page section bundle.
type BlogSections struct {
	Featured   *models.Blog  `json:"featured"`
	Top        []models.Blog `json:"top"`
	MonthlyTop []models.Blog `json:"monthlyTop"`
	Latest     []models.Blog `json:"latest"`
}

// LikeResult reports the post's like state after an engagement write.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

var allowedPlacements = map[string]struct{}{
	constants.PlacementNone:    {},
	constants.PlacementTop:     {},
	constants.PlacementMonthly: {},
	constants.PlacementLatest:  {},
}

// Excerpt derives a plain-text preview from post HTML: tags stripped,
// entities decoded, whitespace collapsed, cut at 180 runes.
func (s *BlogService) Excerpt(htmlContent string) string {
	text := s.stripPolicy.Sanitize(htmlContent)
	text = html.UnescapeString(text)
	text = strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")

	runes := []rune(text)
	if len(runes) <= excerptMaxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptMaxRunes]))
}

// Slugify builds a URL slug from a post title.
func (s *BlogService) Slugify(title string) string {
	return slugify.Make(title)
}

func normalizePlacement(placement string) string {
	if _, ok := allowedPlacements[placement]; ok {
		return placement
	}
	return constants.PlacementLatest
}

// Create validates and stores a new post.
func (s *BlogService) Create(input CreateBlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.HTML) == "" {
		return nil, ErrHTMLRequired
	}
	if strings.TrimSpace(input.ThumbnailURL) == "" {
		return nil, ErrThumbnailRequired
	}

	postSlug := strings.TrimSpace(input.Slug)
	if postSlug == "" {
		postSlug = s.Slugify(title)
	} else {
		postSlug = s.Slugify(postSlug)
	}
	count, err := s.repo.CountBySlug(postSlug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	minutesRead := input.MinutesRead
	if minutesRead <= 0 {
		minutesRead = 5
	}

	publishedAt := time.Now()
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}

	blog := models.Blog{
		Slug:         postSlug,
		Title:        title,
		HTML:         input.HTML,
		Excerpt:      s.Excerpt(input.HTML),
		MinutesRead:  minutesRead,
		Categories:   models.StringArray(categories),
		ThumbnailURL: input.ThumbnailURL,
		Placement:    normalizePlacement(input.Placement),
		IsFeatured:   input.IsFeatured,
		Likes:        0,
		LikedBy:      models.StringArray{},
		PublishedAt:  publishedAt,
	}

	if err := s.repo.Create(&blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update applies a partial content update, recomputing derived fields.
func (s *BlogService) Update(id string, input UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		blog.Title = title
	}

	// The slug moves only on an explicit request; title edits leave the
	// public URL alone.
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		newSlug := s.Slugify(strings.TrimSpace(*input.Slug))
		if newSlug != blog.Slug {
			count, err := s.repo.CountBySlug(newSlug, &blog.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSlugExists
			}
			blog.Slug = newSlug
		}
	}

	if input.HTML != nil {
		if strings.TrimSpace(*input.HTML) == "" {
			return nil, ErrHTMLRequired
		}
		blog.HTML = *input.HTML
		blog.Excerpt = s.Excerpt(*input.HTML)
	}

	if input.ThumbnailURL != nil {
		// A thumbnail can be replaced but never cleared.
		if strings.TrimSpace(*input.ThumbnailURL) == "" {
			return nil, ErrThumbnailRequired
		}
		blog.ThumbnailURL = *input.ThumbnailURL
	}

	if input.MinutesRead != nil && *input.MinutesRead > 0 {
		blog.MinutesRead = *input.MinutesRead
	}
	if input.Categories != nil {
		blog.Categories = models.StringArray(input.Categories)
	}
	if input.IsFeatured != nil {
		blog.IsFeatured = *input.IsFeatured
	}
	if input.PublishedAt != nil {
		blog.PublishedAt = *input.PublishedAt
	}

	if err := s.repo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// UpdatePlacement applies a curatorial write. Only placement columns
// are touched, so updated_at stays put and the post keeps its spot in
// the "latest updates" ordering.
func (s *BlogService) UpdatePlacement(id string, input PlacementInput) (*models.Blog, error) {
	if input.Placement == nil && input.IsFeatured == nil && input.MonthlyOrder == nil {
		return nil, ErrInvalidPlacement
	}

	blog, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if input.Placement != nil {
		// Unknown values fall back to latest, same as on create.
		placement := normalizePlacement(*input.Placement)
		fields["placement"] = placement
		blog.Placement = placement
	}
	if input.IsFeatured != nil {
		fields["is_featured"] = *input.IsFeatured
		blog.IsFeatured = *input.IsFeatured
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateColumns(blog.ID, fields); err != nil {
			return nil, err
		}
	}

	if input.MonthlyOrder != nil {
		if err := s.SetMonthlyOrder(input.MonthlyOrder); err != nil {
			return nil, err
		}
	}

	return blog, nil
}

// Delete hard-removes a post. Deleting an id that is already gone is
// treated as success.
func (s *BlogService) Delete(id string) error {
	blog, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if blog == nil {
		return nil
	}
	return s.repo.Delete(id)
}

// GetByID fetches a post by id.
func (s *BlogService) GetByID(id string) (*models.Blog, error) {
	blog, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	return blog, nil
}

// GetBySlug fetches a post by slug.
func (s *BlogService) GetBySlug(slug string) (*models.Blog, error) {
	blog, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	return blog, nil
}

// ListAll returns every post, most-recently-touched first.
func (s *BlogService) ListAll() ([]models.Blog, error) {
	return s.repo.ListAll()
}

// List returns a page of posts for listings.
func (s *BlogService) List(search string, page, pageSize int) ([]models.Blog, int64, error) {
	filter := repository.BlogListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		OrderBy:  "updated_at DESC, created_at DESC, id DESC",
	}
	return s.repo.List(filter)
}

// MonthlyOrder reads the curated monthly id list from settings.
func (s *BlogService) MonthlyOrder() ([]uint, error) {
	setting, err := s.settingRepo.GetByKey(constants.SettingKeyMonthlyOrder)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return []uint{}, nil
	}

	raw, ok := setting.ValueJSON["ids"]
	if !ok {
		return []uint{}, nil
	}

	// The setting round-trips through a JSON column, so ids come back
	// as []interface{} of float64.
	items, ok := raw.([]interface{})
	if !ok {
		return []uint{}, nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			ids = append(ids, uint(v))
		case json.Number:
			if n, err := v.Int64(); err == nil && n > 0 {
				ids = append(ids, uint(n))
			}
		}
	}
	return ids, nil
}

// SetMonthlyOrder persists the curated monthly id list, de-duplicated
// and capped at the monthly section size.
func (s *BlogService) SetMonthlyOrder(ids []uint) error {
	seen := make(map[uint]struct{}, len(ids))
	deduped := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
		if len(deduped) >= constants.SectionMonthlyLimit {
			break
		}
	}

	values := make([]interface{}, 0, len(deduped))
	for _, id := range deduped {
		values = append(values, float64(id))
	}

	return s.settingRepo.Upsert(&models.Setting{
		Key:       constants.SettingKeyMonthlyOrder,
		ValueJSON: models.JSON{"ids": values},
	})
}

// Sections assembles the public landing-page bundle in one pass over
// the posts.
func (s *BlogService) Sections() (*BlogSections, error) {
	blogs, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	sections := &BlogSections{
		Top:        make([]models.Blog, 0, constants.SectionTopLimit),
		MonthlyTop: make([]models.Blog, 0, constants.SectionMonthlyLimit),
		Latest:     make([]models.Blog, 0, constants.SectionLatestLimit),
	}

	monthly := make(map[uint]models.Blog)
	for i := range blogs {
		blog := blogs[i]
		if sections.Featured == nil && blog.IsFeatured {
			featured := blog
			sections.Featured = &featured
		}
		switch blog.Placement {
		case constants.PlacementTop:
			if len(sections.Top) < constants.SectionTopLimit {
				sections.Top = append(sections.Top, blog)
			}
		case constants.PlacementMonthly:
			monthly[blog.ID] = blog
		}
	}

	// No explicitly featured post: fall back to the first in list order.
	if sections.Featured == nil && len(blogs) > 0 {
		featured := blogs[0]
		sections.Featured = &featured
	}

	order, err := s.MonthlyOrder()
	if err != nil {
		return nil, err
	}
	picked := make(map[uint]struct{}, len(order))
	for _, id := range order {
		blog, ok := monthly[id]
		if !ok {
			// Stale id: the post was deleted or moved off monthly.
			continue
		}
		if len(sections.MonthlyTop) >= constants.SectionMonthlyLimit {
			break
		}
		sections.MonthlyTop = append(sections.MonthlyTop, blog)
		picked[id] = struct{}{}
	}
	// Monthly posts missing from the curated list trail in list order.
	for i := range blogs {
		if len(sections.MonthlyTop) >= constants.SectionMonthlyLimit {
			break
		}
		blog := blogs[i]
		if blog.Placement != constants.PlacementMonthly {
			continue
		}
		if _, ok := picked[blog.ID]; ok {
			continue
		}
		sections.MonthlyTop = append(sections.MonthlyTop, blog)
	}

	latest := make([]models.Blog, len(blogs))
	copy(latest, blogs)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].PublishedAt.After(latest[j].PublishedAt)
	})
	if len(latest) > constants.SectionLatestLimit {
		latest = latest[:constants.SectionLatestLimit]
	}
	sections.Latest = latest

	return sections, nil
}

// MostLiked returns the most-liked posts.
func (s *BlogService) MostLiked() ([]models.Blog, error) {
	return s.repo.MostLiked(constants.SectionMostLikedLimit)
}

// Like records a device's like. Repeating the call is a no-op that
// reports the current state.
func (s *BlogService) Like(id, deviceID string) (*LikeResult, error) {
	return s.engage(id, deviceID, true)
}

// Unlike removes a device's like, flooring the count at zero.
func (s *BlogService) Unlike(id, deviceID string) (*LikeResult, error) {
	return s.engage(id, deviceID, false)
}

func (s *BlogService) engage(id, deviceID string, like bool) (*LikeResult, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	blog, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}

	has := blog.LikedBy.Contains(deviceID)
	changed := false
	likedBy := blog.LikedBy

	if like && !has {
		likedBy = append(likedBy, deviceID)
		changed = true
	}
	if !like && has {
		next := make(models.StringArray, 0, len(likedBy))
		for _, d := range likedBy {
			if d != deviceID {
				next = append(next, d)
			}
		}
		likedBy = next
		changed = true
	}

	likes := len(likedBy)
	if changed {
		// Engagement writes skip updated_at the same way placement
		// writes do.
		err := s.repo.UpdateColumns(blog.ID, map[string]interface{}{
			"liked_by": likedBy,
			"likes":    likes,
		})
		if err != nil {
			return nil, err
		}
	}

	return &LikeResult{Likes: likes, Liked: like}, nil
}
