package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/geo"
	"github.com/vintner/backend/internal/domain/shared"
	"github.com/vintner/backend/internal/infrastructure/telemetry"
)

// DefaultTypeaheadLimit caps typeahead results when no limit is given
const DefaultTypeaheadLimit = 100

// ManufacturerSynchronizer is the taxonomy synchronization hook invoked
// after manufacturer saves. Implemented by TaxonomySyncService.
type ManufacturerSynchronizer interface {
	SynchronizeManufacturer(ctx context.Context, m *catalog.Manufacturer) error
	PropagateToProducts(ctx context.Context, manufacturerID uuid.UUID) error
}

// TypeaheadCache caches typeahead lookups. A nil cache disables caching.
type TypeaheadCache interface {
	Get(ctx context.Context, query string, limit int) ([]TypeaheadEntry, bool)
	Set(ctx context.Context, query string, limit int, entries []TypeaheadEntry)
}

// ManufacturerService handles manufacturer business operations. Taxonomy
// synchronization runs as an explicit post-save step with fail-closed
// semantics: a sync error fails the whole operation.
type ManufacturerService struct {
	manufacturerRepo catalog.ManufacturerRepository
	countryRepo      geo.CountryRepository
	synchronizer     ManufacturerSynchronizer
	typeaheadCache   TypeaheadCache
	logger           *zap.Logger
}

// NewManufacturerService creates a new ManufacturerService
func NewManufacturerService(
	manufacturerRepo catalog.ManufacturerRepository,
	countryRepo geo.CountryRepository,
	synchronizer ManufacturerSynchronizer,
	logger *zap.Logger,
) *ManufacturerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManufacturerService{
		manufacturerRepo: manufacturerRepo,
		countryRepo:      countryRepo,
		synchronizer:     synchronizer,
		logger:           logger,
	}
}

// SetTypeaheadCache attaches a cache for typeahead lookups
func (s *ManufacturerService) SetTypeaheadCache(cache TypeaheadCache) {
	s.typeaheadCache = cache
}

// Create creates a manufacturer, appends it to the end of the position list
// and synchronizes the taxonomy tree
func (s *ManufacturerService) Create(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "create")
	defer span.End()

	resp, err := s.create(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrManufacturerID, resp.ID.String(),
		telemetry.SpanAttrManufacturerSlug, resp.Slug,
	)
	return resp, nil
}

func (s *ManufacturerService) create(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerResponse, error) {
	m, err := catalog.NewManufacturer(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.applyAttributes(m, req.Abstract, req.Description, req.WhyWeLikeIt, req.MetaTitle, req.MetaDescription, req.MetaKeywords, req.Address1, req.Address2, req.City, req.Zipcode, req.Phone, req.AlternativePhone); err != nil {
		return nil, err
	}
	m.AssignCountry(req.CountryID)
	m.AssignMicroRegion(req.MicroRegionID)

	if err := s.resolveSlug(ctx, m, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}

	maxPos, err := s.manufacturerRepo.MaxPosition(ctx)
	if err != nil {
		return nil, err
	}
	m.SetPosition(maxPos + 1)

	if err := s.manufacturerRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	if err := s.synchronizer.SynchronizeManufacturer(ctx, m); err != nil {
		return nil, err
	}

	return ToManufacturerResponse(m, ""), nil
}

// GetByID retrieves a manufacturer by ID, optionally localized
func (s *ManufacturerService) GetByID(ctx context.Context, id uuid.UUID, locale string) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(m, locale), nil
}

// GetBySlug retrieves a manufacturer by its slug, following the redirect
// history for retired slugs
func (s *ManufacturerService) GetBySlug(ctx context.Context, slug string, locale string) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(m, locale), nil
}

// List retrieves manufacturers ordered by position
func (s *ManufacturerService) List(ctx context.Context, filter ManufacturerListFilter) (*shared.Paginated[ManufacturerListResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "position"
	domainFilter.OrderDir = "asc"

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		}
	}

	page, err := s.manufacturerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ManufacturerListResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToManufacturerListResponse(&page.Items[i])
	}

	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Typeahead returns manufacturers whose name starts with the prefix,
// case-insensitively. A non-positive limit falls back to the default.
func (s *ManufacturerService) Typeahead(ctx context.Context, query string, limit int) ([]TypeaheadEntry, error) {
	if limit <= 0 {
		limit = DefaultTypeaheadLimit
	}

	if s.typeaheadCache != nil {
		if entries, ok := s.typeaheadCache.Get(ctx, query, limit); ok {
			return entries, nil
		}
	}

	manufacturers, err := s.manufacturerRepo.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]TypeaheadEntry, len(manufacturers))
	for i := range manufacturers {
		entries[i] = TypeaheadEntry{ID: manufacturers[i].ID, Name: manufacturers[i].Name}
	}

	if s.typeaheadCache != nil {
		s.typeaheadCache.Set(ctx, query, limit, entries)
	}

	return entries, nil
}

// Update updates a manufacturer, records a slug redirect when the slug
// changed, re-synchronizes the taxonomy tree and propagates tag changes to
// the manufacturer's products
func (s *ManufacturerService) Update(ctx context.Context, id uuid.UUID, req UpdateManufacturerRequest) (*ManufacturerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrManufacturerID, id.String())

	resp, err := s.update(ctx, id, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrManufacturerSlug, resp.Slug)
	return resp, nil
}

func (s *ManufacturerService) update(ctx context.Context, id uuid.UUID, req UpdateManufacturerRequest) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSlug := m.Slug

	if err := m.Update(req.Name, req.Abstract, req.Description, req.WhyWeLikeIt); err != nil {
		return nil, err
	}
	if err := m.SetMeta(req.MetaTitle, req.MetaDescription, req.MetaKeywords); err != nil {
		return nil, err
	}
	if err := m.SetAddress(req.Address1, req.Address2, req.City, req.Zipcode, req.Phone); err != nil {
		return nil, err
	}
	m.AlternativePhone = req.AlternativePhone
	m.AssignCountry(req.CountryID)
	m.AssignMicroRegion(req.MicroRegionID)

	if req.Slug != oldSlug {
		if err := m.SetSlug(req.Slug); err != nil {
			return nil, err
		}
		if err := s.resolveSlug(ctx, m, m.ID); err != nil {
			return nil, err
		}
	}

	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}

	if err := s.manufacturerRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	if oldSlug != "" && m.Slug != oldSlug {
		if err := s.manufacturerRepo.SaveSlugRedirect(ctx, catalog.NewSlugRedirect(m.ID, oldSlug)); err != nil {
			return nil, err
		}
	}

	if err := s.synchronizer.SynchronizeManufacturer(ctx, m); err != nil {
		return nil, err
	}
	if err := s.synchronizer.PropagateToProducts(ctx, m.ID); err != nil {
		return nil, err
	}

	return ToManufacturerResponse(m, ""), nil
}

// UpsertTranslation adds or replaces the manufacturer's localized text for
// one locale
func (s *ManufacturerService) UpsertTranslation(ctx context.Context, id uuid.UUID, req UpsertTranslationRequest) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.UpsertTranslation(catalog.ManufacturerTranslation{
		Locale:          req.Locale,
		Name:            req.Name,
		Slug:            req.Slug,
		Abstract:        req.Abstract,
		Description:     req.Description,
		WhyWeLikeIt:     req.WhyWeLikeIt,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
	})

	if err := s.manufacturerRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	return ToManufacturerResponse(m, req.Locale), nil
}

// UpdatePositions applies a batch of {id: target index} assignments.
// Moved manufacturers are pulled out of the list and re-inserted at their
// target index; everyone is then renumbered so positions stay a gapless
// permutation of 1..N. The whole batch commits in one transaction.
func (s *ManufacturerService) UpdatePositions(ctx context.Context, moves map[uuid.UUID]int) error {
	if len(moves) == 0 {
		return nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "update_positions")
	defer span.End()
	telemetry.SetAttributes(span, "move_count", len(moves))

	if err := s.updatePositions(ctx, moves); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

func (s *ManufacturerService) updatePositions(ctx context.Context, moves map[uuid.UUID]int) error {
	all, err := s.manufacturerRepo.FindAllOrdered(ctx)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]int, len(all))
	for i := range all {
		byID[all[i].ID] = i
	}
	for id := range moves {
		if _, ok := byID[id]; !ok {
			return shared.NewDomainError("NOT_FOUND", "Manufacturer in position batch not found")
		}
	}

	remaining := make([]uuid.UUID, 0, len(all))
	for i := range all {
		if _, moved := moves[all[i].ID]; !moved {
			remaining = append(remaining, all[i].ID)
		}
	}

	type move struct {
		id    uuid.UUID
		index int
	}
	ordered := make([]move, 0, len(moves))
	for id, index := range moves {
		ordered = append(ordered, move{id: id, index: index})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].index < ordered[j].index })

	for _, mv := range ordered {
		at := mv.index - 1
		if at < 0 {
			at = 0
		}
		if at > len(remaining) {
			at = len(remaining)
		}
		remaining = append(remaining, uuid.Nil)
		copy(remaining[at+1:], remaining[at:])
		remaining[at] = mv.id
	}

	positions := make(map[uuid.UUID]int, len(remaining))
	for i, id := range remaining {
		positions[id] = i + 1
	}

	return s.manufacturerRepo.UpdatePositions(ctx, positions)
}

// Delete removes a manufacturer. The manufacturer's taxon is left in place;
// taxonomy cleanup on destroy is deliberately not performed.
func (s *ManufacturerService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "manufacturer", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrManufacturerID, id.String())

	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.manufacturerRepo.Delete(ctx, m.ID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// resolveSlug enforces slug uniqueness among non-blank slugs, walking the
// candidate list (name, then name plus city) when the requested slug is
// taken. A blank slug skips the check entirely.
func (s *ManufacturerService) resolveSlug(ctx context.Context, m *catalog.Manufacturer, excludeID uuid.UUID) error {
	if m.Slug == "" {
		return nil
	}

	taken, err := s.manufacturerRepo.ExistsBySlug(ctx, m.Slug, excludeID)
	if err != nil {
		return err
	}
	if !taken {
		return nil
	}

	for _, candidate := range m.SlugCandidates() {
		if candidate == m.Slug {
			continue
		}
		taken, err := s.manufacturerRepo.ExistsBySlug(ctx, candidate, excludeID)
		if err != nil {
			return err
		}
		if !taken {
			s.logger.Debug("slug taken, using fallback candidate",
				zap.String("slug", m.Slug), zap.String("candidate", candidate))
			return m.SetSlug(candidate)
		}
	}

	errs := &shared.ValidationErrors{}
	errs.Add("slug", "TAKEN", "Slug is already in use")
	return errs
}

// validate runs field validation, resolving the country ISO for
// postal-code checks. A missing country row is treated as absent.
func (s *ManufacturerService) validate(ctx context.Context, m *catalog.Manufacturer) error {
	countryISO := ""
	if m.CountryID != nil {
		country, err := s.countryRepo.FindByID(ctx, *m.CountryID)
		if err == nil {
			countryISO = country.ISO
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}
	return m.Validate(countryISO).ErrOrNil()
}

// applyAttributes sets the optional descriptive, meta and address fields
func (s *ManufacturerService) applyAttributes(m *catalog.Manufacturer, abstract, description, whyWeLikeIt, metaTitle, metaDescription, metaKeywords, address1, address2, city, zipcode, phone, alternativePhone string) error {
	m.Abstract = abstract
	m.Description = description
	m.WhyWeLikeIt = whyWeLikeIt
	if err := m.SetMeta(metaTitle, metaDescription, metaKeywords); err != nil {
		return err
	}
	if err := m.SetAddress(address1, address2, city, zipcode, phone); err != nil {
		return err
	}
	m.AlternativePhone = alternativePhone
	return nil
}
