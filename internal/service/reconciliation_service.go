package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"printstock/internal/config"
	"printstock/internal/domain"
	"printstock/internal/match"
	"printstock/internal/parser"
	"printstock/internal/port"
	"printstock/internal/session"
)

// StartInput is the DTO for starting a reconciliation session from an
// uploaded invoice file.
type StartInput struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// SessionView is the render-ready state of a reconciliation session.
// Suggestions are computed live from the similarity matcher, keyed by item
// index, for new items only.
type SessionView struct {
	ID           uuid.UUID                 `json:"id"`
	Phase        domain.SessionPhase       `json:"phase"`
	FileName     string                    `json:"file_name"`
	Invoice      *domain.ParsedInvoice     `json:"invoice"`
	Decisions    []domain.Decision         `json:"decisions"`
	Suggestions  map[int]match.Suggestions `json:"suggestions"`
	Progress     session.Progress          `json:"progress"`
	CreatedCount int                       `json:"created_count"`
	Resolutions  []domain.Resolution       `json:"resolutions,omitempty"`
}

// ReconciliationService drives the end-to-end reconciliation flow: parse an
// uploaded supplier invoice, let the caller review per-item decisions, bulk
// commit them against inventory, and hand the result off as a purchase order
// draft.
type ReconciliationService interface {
	Start(ctx context.Context, input StartInput) (*SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, itemIndex int, patch domain.DecisionPatch) (*domain.Decision, error)
	// Commit runs the bulk-create loop synchronously. Callers that need the
	// progress counter observable mid-commit run it on its own goroutine and
	// poll Progress.
	Commit(ctx context.Context, id uuid.UUID) error
	Progress(ctx context.Context, id uuid.UUID) (session.Progress, domain.SessionPhase, error)
	Handoff(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	// ArchiveURL returns a presigned link to the archived upload so the
	// review screen can show the original document next to the parse.
	ArchiveURL(ctx context.Context, id uuid.UUID) (string, error)
	Abandon(ctx context.Context, id uuid.UUID) error
}

type reconciliationService struct {
	store     *session.Store
	inventory InventoryService
	parser    port.InvoiceParser
	storage   port.ObjectStorage
	poRepo    port.PurchaseOrderRepository
	s3Cfg     *config.S3Config
	uploadCfg *config.UploadConfig
}

// NewReconciliationService creates a new ReconciliationService implementation.
func NewReconciliationService(
	store *session.Store,
	inventory InventoryService,
	invoiceParser port.InvoiceParser,
	storage port.ObjectStorage,
	poRepo port.PurchaseOrderRepository,
	s3Cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
) ReconciliationService {
	return &reconciliationService{
		store:     store,
		inventory: inventory,
		parser:    invoiceParser,
		storage:   storage,
		poRepo:    poRepo,
		s3Cfg:     s3Cfg,
		uploadCfg: uploadCfg,
	}
}

func (s *reconciliationService) Start(ctx context.Context, input StartInput) (*SessionView, error) {
	if !domain.AllowedContentTypes[input.ContentType] {
		return nil, domain.ErrUnsupportedFileType
	}
	maxBytes := s.uploadCfg.MaxFileSizeBytes()
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read one byte past the ceiling so an understated Content-Length is
	// still rejected.
	fileBytes, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(fileBytes)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	snapshot, err := s.inventory.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inventory snapshot: %w", err)
	}

	archiveKey := s.archiveUpload(ctx, input.FileName, input.ContentType, fileBytes)

	invoice, err := s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   fileBytes,
		ContentType: input.ContentType,
		Snapshot:    snapshot,
	})
	if err != nil {
		// No session is created on parse failure; the caller retries the
		// upload. The parser's message is surfaced verbatim.
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}
	parser.Normalize(invoice, snapshot)

	sess := session.New(invoice, snapshot, BuildDecisions(invoice), input.FileName, archiveKey)
	s.store.Put(sess)

	log.Printf("reconciliationService.Start: session %s created (%d items, %d new)",
		sess.ID, len(invoice.Items), len(sess.Decisions()))

	return s.view(sess), nil
}

// archiveUpload stores the raw upload for audit. Failure never fails the
// session.
func (s *reconciliationService) archiveUpload(ctx context.Context, fileName, contentType string, fileBytes []byte) string {
	if s.s3Cfg.Bucket == "" {
		return ""
	}
	key := fmt.Sprintf("invoices/%s/%s", uuid.New(), fileName)
	_, err := s.storage.Upload(ctx, port.ArchivePutInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(fileBytes),
		ContentType: contentType,
		Size:        int64(len(fileBytes)),
	})
	if err != nil {
		log.Printf("reconciliationService.archiveUpload: archiving %q failed: %v", fileName, err)
		return ""
	}
	return key
}

func (s *reconciliationService) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *reconciliationService) UpdateDecision(ctx context.Context, id uuid.UUID, itemIndex int, patch domain.DecisionPatch) (*domain.Decision, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.UpdateDecision(itemIndex, patch)
}

func (s *reconciliationService) Commit(ctx context.Context, id uuid.UUID) error {
	sess, err := s.store.Get(id)
	if err != nil {
		return err
	}
	commitCtx, err := sess.BeginCommit(ctx)
	if err != nil {
		return err
	}
	defer sess.FinishCommit()

	decisions := make(map[int]domain.Decision)
	for _, d := range sess.Decisions() {
		decisions[d.ItemIndex] = d
	}

	// Strictly sequential, in original invoice order. Each creation call is
	// independent: a failure is recorded on its resolution and the loop
	// continues.
	for i, item := range sess.Invoice().Items {
		if !item.IsNew {
			sess.RecordResolution(resolveMatched(i, item), false)
			continue
		}
		d, ok := decisions[i]
		if !ok {
			sess.RecordResolution(domain.Resolution{
				ItemIndex: i, Kind: item.Kind, Error: domain.ErrDecisionNotFound.Error(),
			}, false)
			continue
		}
		if d.Action == domain.ActionLink {
			sess.RecordResolution(resolveLinked(i, d), false)
			continue
		}
		sess.RecordResolution(s.resolveCreate(commitCtx, i, d), true)
	}

	log.Printf("reconciliationService.Commit: session %s done (%d created)", sess.ID, sess.CreatedCount())
	return nil
}

// resolveMatched resolves an item the parser already matched to inventory.
func resolveMatched(index int, item domain.ParsedItem) domain.Resolution {
	switch {
	case item.MaterialID != nil:
		id := *item.MaterialID
		return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindMaterial, InventoryID: &id}
	case item.ConsumableID != nil:
		id := *item.ConsumableID
		return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindConsumable, InventoryID: &id}
	default:
		// Normalize() upholds the matched-item invariant, so this only
		// happens for items classified "other".
		return domain.Resolution{ItemIndex: index, Kind: item.Kind}
	}
}

// resolveLinked resolves an item the user linked to an existing record.
func resolveLinked(index int, d domain.Decision) domain.Resolution {
	if d.Category == domain.ItemKindMaterial && d.LinkedMaterialID != nil {
		id := *d.LinkedMaterialID
		return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindMaterial, InventoryID: &id}
	}
	if d.Category == domain.ItemKindConsumable && d.LinkedConsumableID != nil {
		id := *d.LinkedConsumableID
		return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindConsumable, InventoryID: &id}
	}
	return domain.Resolution{ItemIndex: index, Kind: d.Category, Error: domain.ErrNoLinkTarget.Error()}
}

// resolveCreate invokes the inventory-creation collaborator for one item.
func (s *reconciliationService) resolveCreate(ctx context.Context, index int, d domain.Decision) domain.Resolution {
	if ctx.Err() != nil {
		return domain.Resolution{ItemIndex: index, Kind: d.Category, Error: "creation canceled"}
	}

	if d.Category == domain.ItemKindMaterial {
		m, err := s.inventory.CreateMaterial(ctx, d.Material)
		if err != nil {
			log.Printf("reconciliationService.resolveCreate: item %d material failed: %v", index, err)
			return domain.Resolution{ItemIndex: index, Kind: d.Category, Error: err.Error()}
		}
		return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindMaterial, InventoryID: &m.ID, Created: true}
	}

	c, err := s.inventory.CreateConsumable(ctx, d.Consumable)
	if err != nil {
		log.Printf("reconciliationService.resolveCreate: item %d consumable failed: %v", index, err)
		return domain.Resolution{ItemIndex: index, Kind: d.Category, Error: err.Error()}
	}
	return domain.Resolution{ItemIndex: index, Kind: domain.ItemKindConsumable, InventoryID: &c.ID, Created: true}
}

func (s *reconciliationService) Progress(ctx context.Context, id uuid.UUID) (session.Progress, domain.SessionPhase, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return session.Progress{}, "", err
	}
	p, phase := sess.Progress()
	return p, phase, nil
}

func (s *reconciliationService) Handoff(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	resolutions, err := sess.Resolutions()
	if err != nil {
		return nil, err
	}

	invoice := sess.Invoice()
	po := &domain.PurchaseOrder{
		ID:               uuid.New(),
		Supplier:         invoice.Supplier,
		InvoiceNumber:    invoice.InvoiceNumber,
		ExpectedDelivery: invoice.ExpectedDelivery,
		Notes:            invoice.Notes,
		Status:           domain.POStatusDraft,
	}

	// Lines keep the supplier invoice ordering. Items without a concrete
	// inventory record (failed creations, "other" lines) are left out.
	for _, res := range resolutions {
		if res.InventoryID == nil {
			continue
		}
		item := invoice.Items[res.ItemIndex]
		line := domain.PurchaseOrderLine{
			ID:              uuid.New(),
			PurchaseOrderID: po.ID,
			Position:        res.ItemIndex,
			Kind:            res.Kind,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitCost:        item.UnitCost,
		}
		resID := *res.InventoryID
		if res.Kind == domain.ItemKindMaterial {
			line.MaterialID = &resID
		} else {
			line.ConsumableID = &resID
		}
		po.Lines = append(po.Lines, line)
	}

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, fmt.Errorf("creating purchase order draft: %w", err)
	}

	log.Printf("reconciliationService.Handoff: session %s -> purchase order %s (%d lines)",
		sess.ID, po.ID, len(po.Lines))

	// The session has served its purpose once handed off.
	_ = s.store.Delete(sess.ID)
	return po, nil
}

func (s *reconciliationService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return "", err
	}
	key := sess.ArchiveKey()
	if key == "" {
		return "", domain.ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning archived invoice: %w", err)
	}
	return url, nil
}

func (s *reconciliationService) Abandon(ctx context.Context, id uuid.UUID) error {
	sess, err := s.store.Get(id)
	if err != nil {
		return err
	}
	archiveKey := sess.ArchiveKey()
	if err := s.store.Delete(id); err != nil {
		return err
	}
	// Abandoning leaves no trace: drop the archived upload too. Best effort,
	// the session itself is already gone.
	if archiveKey != "" {
		if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, archiveKey); err != nil {
			log.Printf("reconciliationService.Abandon: deleting archive %q failed: %v", archiveKey, err)
		}
	}
	return nil
}

func (s *reconciliationService) view(sess *session.Session) *SessionView {
	invoice := sess.Invoice()
	snapshot := sess.Snapshot()
	progress, phase := sess.Progress()

	v := &SessionView{
		ID:           sess.ID,
		Phase:        phase,
		FileName:     sess.FileName(),
		Invoice:      invoice,
		Decisions:    sess.Decisions(),
		Suggestions:  make(map[int]match.Suggestions),
		Progress:     progress,
		CreatedCount: sess.CreatedCount(),
	}
	for i, item := range invoice.Items {
		if item.IsNew {
			v.Suggestions[i] = match.Find(item.DisplayName(), snapshot)
		}
	}
	if resolutions, err := sess.Resolutions(); err == nil {
		v.Resolutions = resolutions
	}
	return v
}
