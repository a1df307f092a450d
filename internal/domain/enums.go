package domain

// ItemKind classifies a parsed invoice line.
type ItemKind string

const (
	ItemKindMaterial   ItemKind = "material"
	ItemKindConsumable ItemKind = "consumable"
	ItemKindOther      ItemKind = "other"
)

// MaterialType distinguishes filament spools from resin bottles.
type MaterialType string

const (
	MaterialTypeFilament MaterialType = "filament"
	MaterialTypeResin    MaterialType = "resin"
)

// MaterialSubtypes is the fixed subtype vocabulary, in inference priority order.
var MaterialSubtypes = []string{"PLA", "PETG", "ABS", "TPU", "ASA", "Nylon", "Resin", "Other"}

// ConsumableCategory groups consumable inventory records.
type ConsumableCategory string

const (
	ConsumableCategoryAdhesive ConsumableCategory = "adhesive"
	ConsumableCategoryNozzle   ConsumableCategory = "nozzle"
	ConsumableCategoryTool     ConsumableCategory = "tool"
	ConsumableCategoryPacking  ConsumableCategory = "packing"
	ConsumableCategoryOther    ConsumableCategory = "other"
)

// DecisionAction is the user's chosen strategy for an unmatched item.
type DecisionAction string

const (
	ActionCreate DecisionAction = "create"
	ActionLink   DecisionAction = "link"
)

// SessionPhase is the lifecycle phase of a reconciliation session.
type SessionPhase string

const (
	PhaseUpload   SessionPhase = "upload"
	PhaseReview   SessionPhase = "review"
	PhaseCreating SessionPhase = "creating"
	PhaseDone     SessionPhase = "done"
)

// PurchaseOrderStatus is the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusSubmitted PurchaseOrderStatus = "submitted"
	POStatusReceived  PurchaseOrderStatus = "received"
)

// AllowedContentTypes is the MIME allow-list for invoice uploads.
var AllowedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}
