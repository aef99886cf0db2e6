package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/geo"
	"github.com/vintner/backend/internal/domain/shared"
	"github.com/vintner/backend/internal/domain/taxonomy"
	"github.com/vintner/backend/internal/infrastructure/telemetry"
)

// CountryNameLocalizer resolves a country's display name for a locale.
// The second return value reports whether a localized name was found;
// callers fall back to the raw country name when it is false.
type CountryNameLocalizer interface {
	LocalizedName(iso, locale string) (string, bool)
}

// TaxonomySyncConfig holds the well-known root paths of the taxonomy tree.
// The paths are explicit configuration rather than discovered at runtime.
type TaxonomySyncConfig struct {
	// CountryRootPath is the permalink of the node countries are filed under
	CountryRootPath string
	// CountryRootName is the display name used when the country root has to
	// be created
	CountryRootName string
	// ManufacturerRootPath is the permalink of the node manufacturer taxons
	// are filed under. Sync operations never create the node; when it is
	// absent the manufacturer taxon step is skipped. EnsureRoots creates it
	// at startup.
	ManufacturerRootPath string
	// ManufacturerRootName is the display name used when EnsureRoots has to
	// create the manufacturer root
	ManufacturerRootName string
	// Locale used to localize country names for taxon naming
	Locale string
}

// defaultTaxonomyName names the taxonomy EnsureRoots creates when the
// store has none
const defaultTaxonomyName = "Catalog"

// DefaultTaxonomySyncConfig returns the default root configuration
func DefaultTaxonomySyncConfig() TaxonomySyncConfig {
	return TaxonomySyncConfig{
		CountryRootPath:      "countries",
		CountryRootName:      "Countries",
		ManufacturerRootPath: "manufacturers",
		ManufacturerRootName: "Manufacturers",
		Locale:               "en",
	}
}

// TaxonomySyncService keeps the taxonomy tree and product tag sets
// consistent with manufacturer, country and region data. Every operation is
// idempotent: nodes are looked up by permalink before being created, and
// product tags are only ever added, never removed.
type TaxonomySyncService struct {
	taxonomyRepo     taxonomy.TaxonomyRepository
	taxonRepo        taxonomy.TaxonRepository
	manufacturerRepo catalog.ManufacturerRepository
	productRepo      catalog.ProductRepository
	countryRepo      geo.CountryRepository
	microRegionRepo  geo.MicroRegionRepository
	localizer        CountryNameLocalizer
	config           TaxonomySyncConfig
	logger           *zap.Logger
}

// NewTaxonomySyncService creates a new TaxonomySyncService
func NewTaxonomySyncService(
	taxonomyRepo taxonomy.TaxonomyRepository,
	taxonRepo taxonomy.TaxonRepository,
	manufacturerRepo catalog.ManufacturerRepository,
	productRepo catalog.ProductRepository,
	countryRepo geo.CountryRepository,
	microRegionRepo geo.MicroRegionRepository,
	localizer CountryNameLocalizer,
	config TaxonomySyncConfig,
	logger *zap.Logger,
) *TaxonomySyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxonomySyncService{
		taxonomyRepo:     taxonomyRepo,
		taxonRepo:        taxonRepo,
		manufacturerRepo: manufacturerRepo,
		productRepo:      productRepo,
		countryRepo:      countryRepo,
		microRegionRepo:  microRegionRepo,
		localizer:        localizer,
		config:           config,
		logger:           logger,
	}
}

// EnsureCountryTaxon finds or creates the taxon for the manufacturer's
// country under the configured country root. Returns nil without error when
// the manufacturer has no country or the country row is gone.
func (s *TaxonomySyncService) EnsureCountryTaxon(ctx context.Context, m *catalog.Manufacturer) (*taxonomy.Taxon, error) {
	if m.CountryID == nil {
		return nil, nil
	}

	country, err := s.countryRepo.FindByID(ctx, *m.CountryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("country missing, skipping country taxon",
				zap.String("manufacturer_id", m.ID.String()))
			return nil, nil
		}
		return nil, err
	}

	name := s.countryName(country)
	permalink := taxonomy.ChildPermalink(s.config.CountryRootPath, name)

	taxon, err := s.taxonRepo.FindByPermalink(ctx, permalink)
	if err == nil {
		return taxon, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	root, err := s.ensureCountryRoot(ctx)
	if err != nil {
		return nil, err
	}

	taxon, err = taxonomy.NewChildTaxonAt(root, name, permalink)
	if err != nil {
		return nil, err
	}
	if err := s.taxonRepo.Save(ctx, taxon); err != nil {
		return nil, err
	}

	s.logger.Info("created country taxon",
		zap.String("permalink", permalink),
		zap.String("country", country.ISO))

	return taxon, nil
}

// EnsureRegionTaxon finds or creates the taxon for the manufacturer's
// micro-region under its country taxon, recording the node on the region
// the first time it is created. Returns nil without error when the
// manufacturer has no region or the region row is gone.
func (s *TaxonomySyncService) EnsureRegionTaxon(ctx context.Context, m *catalog.Manufacturer, countryTaxon *taxonomy.Taxon) (*taxonomy.Taxon, error) {
	if m.MicroRegionID == nil || countryTaxon == nil {
		return nil, nil
	}

	region, err := s.microRegionRepo.FindByID(ctx, *m.MicroRegionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("micro-region missing, skipping region taxon",
				zap.String("manufacturer_id", m.ID.String()))
			return nil, nil
		}
		return nil, err
	}

	if region.TaxonID != nil {
		taxon, err := s.taxonRepo.FindByID(ctx, *region.TaxonID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return taxon, nil
	}

	permalink := taxonomy.ChildPermalink(countryTaxon.Permalink, region.Name)
	taxon, err := s.taxonRepo.FindByPermalink(ctx, permalink)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		taxon, err = taxonomy.NewChildTaxon(countryTaxon, region.Name)
		if err != nil {
			return nil, err
		}
		if err := s.taxonRepo.Save(ctx, taxon); err != nil {
			return nil, err
		}
		s.logger.Info("created region taxon", zap.String("permalink", permalink))
	}

	if err := region.AssignTaxon(taxon.ID); err == nil {
		if err := s.microRegionRepo.Save(ctx, region); err != nil {
			return nil, err
		}
	}

	return taxon, nil
}

// EnsureManufacturerTaxon creates the manufacturer's own taxon under the
// configured manufacturer root and records it on the manufacturer.
// The operation runs at most once per manufacturer: a manufacturer that
// already holds a taxon reference is left untouched. When the manufacturer
// root does not exist the step is skipped silently.
func (s *TaxonomySyncService) EnsureManufacturerTaxon(ctx context.Context, m *catalog.Manufacturer) error {
	if m.HasTaxon() {
		return nil
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil
	}

	root, err := s.taxonRepo.FindByPermalink(ctx, s.config.ManufacturerRootPath)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("manufacturer root taxon absent, skipping",
				zap.String("path", s.config.ManufacturerRootPath))
			return nil
		}
		return err
	}

	permalink := taxonomy.ChildPermalink(root.Permalink, m.Name)
	taxon, err := s.taxonRepo.FindByPermalink(ctx, permalink)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		taxon, err = taxonomy.NewChildTaxon(root, m.Name)
		if err != nil {
			return err
		}
		if err := s.taxonRepo.Save(ctx, taxon); err != nil {
			return err
		}
		s.logger.Info("created manufacturer taxon", zap.String("permalink", permalink))
	}

	if err := m.AssignTaxon(taxon.ID); err != nil {
		return err
	}
	return s.manufacturerRepo.Save(ctx, m)
}

// SynchronizeManufacturer runs the full taxonomy pass for one manufacturer.
// Invoked after manufacturer create and after every update; re-running it
// with unchanged data creates nothing new.
func (s *TaxonomySyncService) SynchronizeManufacturer(ctx context.Context, m *catalog.Manufacturer) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "taxonomy_sync", "synchronize_manufacturer")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrManufacturerID, m.ID.String(),
		telemetry.SpanAttrManufacturerSlug, m.Slug,
	)

	countryTaxon, err := s.EnsureCountryTaxon(ctx, m)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if countryTaxon != nil {
		if _, err := s.EnsureRegionTaxon(ctx, m, countryTaxon); err != nil {
			telemetry.RecordError(span, err)
			return err
		}
	}
	if err := s.EnsureManufacturerTaxon(ctx, m); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// PropagateToProducts re-runs product tag synchronization for every product
// of a manufacturer. Needed after an update because the manufacturer's
// country or region can change while products already reference it.
func (s *TaxonomySyncService) PropagateToProducts(ctx context.Context, manufacturerID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "taxonomy_sync", "propagate_to_products")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrManufacturerID, manufacturerID.String())

	products, err := s.productRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetAttributes(span, "product_count", len(products))
	for i := range products {
		if err := s.SynchronizeProductTags(ctx, &products[i]); err != nil {
			telemetry.RecordError(span, err)
			return err
		}
	}
	return nil
}

// SynchronizeProductTags brings a product's tag set up to date with its
// manufacturer's taxon, country taxon and region taxon. Additions only:
// existing tags are never removed, even when the manufacturer's country or
// region changed since they were added.
func (s *TaxonomySyncService) SynchronizeProductTags(ctx context.Context, p *catalog.Product) error {
	if p.ManufacturerID == nil {
		return nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "taxonomy_sync", "synchronize_product_tags")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, p.ID.String())

	if err := s.synchronizeProductTags(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

func (s *TaxonomySyncService) synchronizeProductTags(ctx context.Context, p *catalog.Product) error {
	m, err := s.manufacturerRepo.FindByID(ctx, *p.ManufacturerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	if m.HasTaxon() {
		taxon, err := s.taxonRepo.FindByID(ctx, *m.TaxonID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if taxon != nil {
			if err := s.addTag(ctx, p, taxon); err != nil {
				return err
			}
		}
	}

	countryTaxon, err := s.EnsureCountryTaxon(ctx, m)
	if err != nil {
		return err
	}
	if countryTaxon != nil {
		if err := s.addTag(ctx, p, countryTaxon); err != nil {
			return err
		}
	}

	if m.MicroRegionID != nil {
		region, err := s.microRegionRepo.FindByID(ctx, *m.MicroRegionID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		// The region's taxon is read straight off the region row rather
		// than re-derived from the path.
		if region.TaxonID != nil {
			taxon, err := s.taxonRepo.FindByID(ctx, *region.TaxonID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if taxon != nil {
				if err := s.addTag(ctx, p, taxon); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (s *TaxonomySyncService) addTag(ctx context.Context, p *catalog.Product, taxon *taxonomy.Taxon) error {
	if !p.TagWithTaxon(taxon) {
		return nil
	}
	return s.productRepo.AddTaxon(ctx, p.ID, taxon.ID)
}

// ensureCountryRoot finds or creates the country root node at the
// configured well-known path, parented under the default taxonomy's
// overall root when one exists.
func (s *TaxonomySyncService) ensureCountryRoot(ctx context.Context) (*taxonomy.Taxon, error) {
	root, err := s.taxonRepo.FindByPermalink(ctx, s.config.CountryRootPath)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tax, err := s.taxonomyRepo.FindDefault(ctx)
	if err != nil {
		return nil, err
	}

	overallRoot, err := s.taxonRepo.FindRoot(ctx, tax.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		root, err = taxonomy.NewRootTaxon(tax.ID, s.config.CountryRootName, s.config.CountryRootPath)
	} else {
		root, err = taxonomy.NewChildTaxonAt(overallRoot, s.config.CountryRootName, s.config.CountryRootPath)
	}
	if err != nil {
		return nil, err
	}
	if err := s.taxonRepo.Save(ctx, root); err != nil {
		return nil, err
	}

	s.logger.Info("created country root taxon", zap.String("permalink", s.config.CountryRootPath))

	return root, nil
}

// EnsureRoots creates the default taxonomy, its overall root and the
// configured well-known root nodes when they are missing. Runs once at
// startup; every step is a lookup-before-create, so reruns are no-ops.
// Without it a pristine database has no node to file country or
// manufacturer taxons under.
func (s *TaxonomySyncService) EnsureRoots(ctx context.Context) error {
	tax, err := s.taxonomyRepo.FindDefault(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		if tax, err = taxonomy.NewTaxonomy(defaultTaxonomyName); err != nil {
			return err
		}
		if err = s.taxonomyRepo.Save(ctx, tax); err != nil {
			return err
		}
		s.logger.Info("created default taxonomy", zap.String("name", tax.Name))
	} else if err != nil {
		return err
	}

	overallRoot, err := s.taxonRepo.FindRoot(ctx, tax.ID)
	if errors.Is(err, shared.ErrNotFound) {
		if overallRoot, err = taxonomy.NewRootTaxon(tax.ID, tax.Name, slug.Make(tax.Name)); err != nil {
			return err
		}
		if err = s.taxonRepo.Save(ctx, overallRoot); err != nil {
			return err
		}
		tax.RootID = &overallRoot.ID
		if err = s.taxonomyRepo.Save(ctx, tax); err != nil {
			return err
		}
		s.logger.Info("created overall root taxon", zap.String("permalink", overallRoot.Permalink))
	} else if err != nil {
		return err
	}

	if _, err = s.ensureCountryRoot(ctx); err != nil {
		return err
	}

	if _, err = s.taxonRepo.FindByPermalink(ctx, s.config.ManufacturerRootPath); err == nil {
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	manufacturerRoot, err := taxonomy.NewChildTaxonAt(overallRoot, s.config.ManufacturerRootName, s.config.ManufacturerRootPath)
	if err != nil {
		return err
	}
	if err = s.taxonRepo.Save(ctx, manufacturerRoot); err != nil {
		return err
	}
	s.logger.Info("created manufacturer root taxon", zap.String("permalink", s.config.ManufacturerRootPath))

	return nil
}

func (s *TaxonomySyncService) countryName(country *geo.Country) string {
	if s.localizer != nil {
		if name, ok := s.localizer.LocalizedName(country.ISO, s.config.Locale); ok && name != "" {
			return name
		}
	}
	return country.Name
}
