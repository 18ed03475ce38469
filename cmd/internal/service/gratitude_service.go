package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gratitude/cmd/internal/contract"
	"gratitude/cmd/internal/domain/entity"
	"gratitude/cmd/internal/infrastructure/aws/storage"
	"gratitude/cmd/internal/utils/apierror"
)

type GratitudeRepository interface {
	FindAll() ([]*entity.Gratitude, error)
	Count() (int64, error)
	FindByID(id int) (*entity.Gratitude, error)
	Create(entry *entity.Gratitude) error
	UpdateContent(entry *entity.Gratitude, content string) error
	Delete(entry *entity.Gratitude) error
}

type DefaultGratitudeService struct {
	Repo     GratitudeRepository
	S3       storage.S3Client
	Validate *validator.Validate
}

// NewGratitudeService wires the entry store. s3 may be nil, in which case
// exports are not archived.
func NewGratitudeService(
	repo GratitudeRepository,
	s3 storage.S3Client,
	validate *validator.Validate,
) *DefaultGratitudeService {
	return &DefaultGratitudeService{
		Repo:     repo,
		S3:       s3,
		Validate: validate,
	}
}

func (g *DefaultGratitudeService) GetAllEntries() ([]*contract.GratitudeResponse, int64, apierror.ErrorResponse) {
	entries, err := g.Repo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch entries: %v", err)
		return nil, 0, apierror.InternalServerError
	}

	total, err := g.Repo.Count()
	if err != nil {
		log.Errorf("failed to count entries: %v", err)
		return nil, 0, apierror.InternalServerError
	}

	resp := make([]*contract.GratitudeResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toGratitudeResponse(entry)
	}
	return resp, total, nil
}

func (g *DefaultGratitudeService) GetEntry(id int) (*contract.GratitudeResponse, apierror.ErrorResponse) {
	entry, apierr := g.findOrFail(id)
	if apierr != nil {
		return nil, apierr
	}
	return toGratitudeResponse(entry), nil
}

func (g *DefaultGratitudeService) CreateEntry(req *contract.GratitudeRequest) (*contract.GratitudeResponse, apierror.ErrorResponse) {
	if valerr := g.Validate.Struct(req); valerr != nil {
		return nil, validationFailure(valerr)
	}

	entry := &entity.Gratitude{
		Content:   req.Content,
		CreatedAt: NowUTC(),
	}

	if err := g.Repo.Create(entry); err != nil {
		log.Errorf("failed to save entry: %v", err)
		return nil, apierror.NewPersistenceError("adding the entry", err)
	}
	return toGratitudeResponse(entry), nil
}

func (g *DefaultGratitudeService) UpdateEntry(id int, req *contract.GratitudeRequest) (*contract.GratitudeResponse, apierror.ErrorResponse) {
	entry, apierr := g.findOrFail(id)
	if apierr != nil {
		return nil, apierr
	}

	if valerr := g.Validate.Struct(req); valerr != nil {
		return nil, validationFailure(valerr)
	}

	if err := g.Repo.UpdateContent(entry, req.Content); err != nil {
		log.Errorf("failed to update entry %d: %v", id, err)
		return nil, apierror.NewPersistenceError("updating the entry", nil)
	}
	return toGratitudeResponse(entry), nil
}

func (g *DefaultGratitudeService) DeleteEntry(id int) apierror.ErrorResponse {
	entry, apierr := g.findOrFail(id)
	if apierr != nil {
		return apierr
	}

	if err := g.Repo.Delete(entry); err != nil {
		log.Errorf("failed to delete entry %d: %v", id, err)
		return apierror.NewPersistenceError("deleting that entry", nil)
	}
	return nil
}

// findOrFail loads the entry or reports NotFoundError. Store failures while
// looking it up are persistence errors, never NotFound.
func (g *DefaultGratitudeService) findOrFail(id int) (*entity.Gratitude, apierror.ErrorResponse) {
	entry, err := g.Repo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch entry %d: %v", id, err)
		return nil, apierror.NewPersistenceError("loading the entry", nil)
	}

	if entry == nil {
		return nil, apierror.NotFoundError
	}
	return entry, nil
}

// validationFailure maps a validator error onto a 400. Anything that is not a
// field validation error means the request type itself is broken.
func validationFailure(err error) apierror.ErrorResponse {
	if serr := apierror.FromValidationError(err); serr != nil {
		return serr
	}
	log.Errorf("unexpected validation failure: %v", err)
	return apierror.InternalServerError
}

func toGratitudeResponse(entry *entity.Gratitude) *contract.GratitudeResponse {
	return &contract.GratitudeResponse{
		ID:        entry.ID,
		Content:   entry.Content,
		CreatedAt: FormatDisplay(entry.CreatedAt),
	}
}
