package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// RecorderDefaults valores usados cuando el llamador no aporta motivo o actor.
// ReferenceFormat admite {product_id} y {sku}.
type RecorderDefaults struct {
	Reason          string
	Actor           string
	ReferenceFormat string
}

// Recorder deriva el movimiento de auditoría a partir de la transición de cantidad de un producto.
// No persiste: ProductWriter inserta el resultado en la misma transacción que el producto.
type Recorder struct {
	defaults RecorderDefaults
	now      func() time.Time
	newID    func() string
}

// NewRecorder construye el servicio; los campos vacíos de d toman los valores históricos.
func NewRecorder(d RecorderDefaults) *Recorder {
	if d.Reason == "" {
		d.Reason = "Quantity updated via admin/form"
	}
	if d.Actor == "" {
		d.Actor = "User"
	}
	if d.ReferenceFormat == "" {
		d.ReferenceFormat = "Stock adjustment - {product_id}"
	}
	return &Recorder{
		defaults: d,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Defaults devuelve los valores efectivos.
func (r *Recorder) Defaults() RecorderDefaults {
	return r.defaults
}

// RecordIfChanged devuelve el movimiento que corresponde a pasar de oldQuantity a newQuantity,
// o nil si el producto no existía antes (oldQuantity nil) o la cantidad no cambió.
func (r *Recorder) RecordIfChanged(oldQuantity *int, newQuantity int, product *entity.Product, reason, actor string) *entity.StockMovement {
	if oldQuantity == nil || *oldQuantity == newQuantity {
		return nil
	}

	delta := newQuantity - *oldQuantity
	movementType := entity.MovementTypeIn
	if delta < 0 {
		movementType = entity.MovementTypeOut
		delta = -delta
	}

	if strings.TrimSpace(reason) == "" {
		reason = r.defaults.Reason
	}
	if strings.TrimSpace(actor) == "" {
		actor = r.defaults.Actor
	}

	return &entity.StockMovement{
		ID:          r.newID(),
		ProductID:   product.ID,
		Quantity:    delta,
		Type:        movementType,
		Reason:      reason,
		Reference:   r.reference(product),
		PerformedBy: actor,
		Timestamp:   r.now(),
		ProductName: product.Name,
	}
}

func (r *Recorder) reference(p *entity.Product) string {
	return strings.NewReplacer(
		"{product_id}", p.ID,
		"{sku}", p.SKU,
	).Replace(r.defaults.ReferenceFormat)
}
