package service

import (
	"context"
	"strings"

	"gala/internal/domain"
	"gala/internal/models"
	"gala/internal/repository"
)

// SectorService manages sector items, their services and service details.
type SectorService struct {
	repo *repository.SectorRepository
}

func NewSectorService(repo *repository.SectorRepository) *SectorService {
	return &SectorService{repo: repo}
}

// Inputs use pointers so updates only touch supplied fields.

type SectorItemInput struct {
	Img           *string `json:"img"`
	Label         *string `json:"label"`
	LabelRu       *string `json:"label_ru"`
	Description   *string `json:"description"`
	DescriptionRu *string `json:"description_ru"`
	Type          *string `json:"type"`
}

type SectorServiceInput struct {
	Img           *string `json:"img"`
	BrandLogo     *string `json:"brand_logo"`
	Label         *string `json:"label"`
	LabelRu       *string `json:"label_ru"`
	Description   *string `json:"description"`
	DescriptionRu *string `json:"description_ru"`
	SectorItemID  *uint   `json:"sector_item_id"`
}

type SectorDetailInput struct {
	Title               *string `json:"title"`
	TitleRu             *string `json:"title_ru"`
	Description         *string `json:"description"`
	DescriptionRu       *string `json:"description_ru"`
	ImageSrc            *string `json:"image_src"`
	PdfURL              *string `json:"pdf_url"`
	SectorItemServiceID *uint   `json:"sector_item_service_id"`
}

func (s *SectorService) ListItems(ctx context.Context, itemType string) ([]models.SectorItem, error) {
	itemType = strings.ToUpper(strings.TrimSpace(itemType))
	if itemType != "" && !validSectorType(itemType) {
		return nil, domain.BadRequest("type must be ENERGY or INFRA")
	}
	return s.repo.ListItems(ctx, itemType)
}

func (s *SectorService) GetItem(ctx context.Context, id uint) (*models.SectorItem, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Sector item not found")
	}
	return it, nil
}

func (s *SectorService) CreateItem(ctx context.Context, in SectorItemInput) (*models.SectorItem, error) {
	it := &models.SectorItem{Type: domain.SectorTypeEnergy}
	if err := applyItem(it, in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(it.Label) == "" {
		return nil, domain.BadRequest("label is required")
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *SectorService) UpdateItem(ctx context.Context, id uint, in SectorItemInput) (*models.SectorItem, error) {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyItem(it, in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(it.Label) == "" {
		return nil, domain.BadRequest("label is required")
	}
	if err := s.repo.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *SectorService) DeleteItem(ctx context.Context, id uint) error {
	n, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("Sector item not found")
	}
	return nil
}

func (s *SectorService) ListServices(ctx context.Context, itemID uint) ([]models.SectorItemService, error) {
	return s.repo.ListServices(ctx, itemID)
}

func (s *SectorService) GetService(ctx context.Context, id uint) (*models.SectorItemService, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Sector item service not found")
	}
	return svc, nil
}

func (s *SectorService) CreateService(ctx context.Context, in SectorServiceInput) (*models.SectorItemService, error) {
	if in.SectorItemID == nil || *in.SectorItemID == 0 {
		return nil, domain.BadRequest("sector_item_id is required")
	}
	if _, err := s.repo.GetItem(ctx, *in.SectorItemID); err != nil {
		return nil, badRequestOr(err, "sector_item_id does not reference an existing sector item")
	}
	svc := &models.SectorItemService{}
	applyService(svc, in)
	if strings.TrimSpace(svc.Label) == "" {
		return nil, domain.BadRequest("label is required")
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *SectorService) UpdateService(ctx context.Context, id uint, in SectorServiceInput) (*models.SectorItemService, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SectorItemID != nil && *in.SectorItemID != svc.SectorItemID {
		if _, err := s.repo.GetItem(ctx, *in.SectorItemID); err != nil {
			return nil, badRequestOr(err, "sector_item_id does not reference an existing sector item")
		}
	}
	applyService(svc, in)
	if strings.TrimSpace(svc.Label) == "" {
		return nil, domain.BadRequest("label is required")
	}
	if err := s.repo.SaveService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *SectorService) DeleteService(ctx context.Context, id uint) error {
	n, err := s.repo.DeleteService(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("Sector item service not found")
	}
	return nil
}

func (s *SectorService) ListDetails(ctx context.Context, serviceID uint) ([]models.SectorItemServiceDetails, error) {
	return s.repo.ListDetails(ctx, serviceID)
}

func (s *SectorService) GetDetail(ctx context.Context, id uint) (*models.SectorItemServiceDetails, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Sector item service detail not found")
	}
	return d, nil
}

func (s *SectorService) CreateDetail(ctx context.Context, in SectorDetailInput) (*models.SectorItemServiceDetails, error) {
	if in.SectorItemServiceID == nil || *in.SectorItemServiceID == 0 {
		return nil, domain.BadRequest("sector_item_service_id is required")
	}
	if _, err := s.repo.GetService(ctx, *in.SectorItemServiceID); err != nil {
		return nil, badRequestOr(err, "sector_item_service_id does not reference an existing service")
	}
	d := &models.SectorItemServiceDetails{}
	applyDetail(d, in)
	if strings.TrimSpace(d.Title) == "" {
		return nil, domain.BadRequest("title is required")
	}
	if err := s.repo.CreateDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SectorService) UpdateDetail(ctx context.Context, id uint, in SectorDetailInput) (*models.SectorItemServiceDetails, error) {
	d, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SectorItemServiceID != nil && *in.SectorItemServiceID != d.SectorItemServiceID {
		if _, err := s.repo.GetService(ctx, *in.SectorItemServiceID); err != nil {
			return nil, badRequestOr(err, "sector_item_service_id does not reference an existing service")
		}
	}
	applyDetail(d, in)
	if strings.TrimSpace(d.Title) == "" {
		return nil, domain.BadRequest("title is required")
	}
	if err := s.repo.SaveDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SectorService) DeleteDetail(ctx context.Context, id uint) error {
	n, err := s.repo.DeleteDetail(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("Sector item service detail not found")
	}
	return nil
}

func applyItem(it *models.SectorItem, in SectorItemInput) error {
	set(&it.Img, in.Img)
	set(&it.Label, in.Label)
	set(&it.LabelRu, in.LabelRu)
	set(&it.Description, in.Description)
	set(&it.DescriptionRu, in.DescriptionRu)
	if in.Type != nil {
		t := strings.ToUpper(strings.TrimSpace(*in.Type))
		if !validSectorType(t) {
			return domain.BadRequest("type must be ENERGY or INFRA")
		}
		it.Type = t
	}
	return nil
}

func applyService(svc *models.SectorItemService, in SectorServiceInput) {
	set(&svc.Img, in.Img)
	set(&svc.BrandLogo, in.BrandLogo)
	set(&svc.Label, in.Label)
	set(&svc.LabelRu, in.LabelRu)
	set(&svc.Description, in.Description)
	set(&svc.DescriptionRu, in.DescriptionRu)
	if in.SectorItemID != nil {
		svc.SectorItemID = *in.SectorItemID
	}
	svc.Details = nil
}

func applyDetail(d *models.SectorItemServiceDetails, in SectorDetailInput) {
	set(&d.Title, in.Title)
	set(&d.TitleRu, in.TitleRu)
	set(&d.Description, in.Description)
	set(&d.DescriptionRu, in.DescriptionRu)
	set(&d.ImageSrc, in.ImageSrc)
	set(&d.PdfURL, in.PdfURL)
	if in.SectorItemServiceID != nil {
		d.SectorItemServiceID = *in.SectorItemServiceID
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func validSectorType(t string) bool {
	return t == domain.SectorTypeEnergy || t == domain.SectorTypeInfra
}

func notFoundOr(err error, msg string) error {
	if repository.IsNotFound(err) {
		return domain.NotFound(msg)
	}
	return err
}

func badRequestOr(err error, msg string) error {
	if repository.IsNotFound(err) {
		return domain.BadRequest(msg)
	}
	return err
}
