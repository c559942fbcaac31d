package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// ProductionUseCase resuelve el BOM de un producto fabricado: consume ingredientes (OUT),
// calcula el costo de entrada y registra la entrada (IN) del terminado con costeo.
type ProductionUseCase struct {
	txRunner ports.TxRunner
	clock    ports.Clock
	metrics  ports.MetricsRecorder
	log      *logger.Logger
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(txRunner ports.TxRunner, clock ports.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *ProductionUseCase {
	return &ProductionUseCase{txRunner: txRunner, clock: clock, metrics: metrics, log: log}
}

// ProductionInput entrada de Produce.
type ProductionInput struct {
	ProductID string
	Quantity  int64
	Date      string
	Note      string
	Reference string
}

// ProductionResult detalle de una corrida de producción.
type ProductionResult struct {
	ProductID           string
	Quantity            int64
	Reference           string
	TotalIngredientCost int64
	IncomingUnitCost    int64
	NewCost             int64
	Consumed            []*entity.StockMutation
	Output              *entity.StockMutation
}

// Produce ejecuta la producción completa en una transacción: sin escrituras parciales.
func (uc *ProductionUseCase) Produce(ctx context.Context, in ProductionInput) (*ProductionResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := uc.clock()
	date, err := domain.NormalizeDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	in.Date = date

	var res *ProductionResult
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		lines, err := repos.Recipes().ListByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		res, err = produce(ctx, repos, in, lines, now)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Int64("quantity", in.Quantity).Msg("producción revertida")
		return nil, domain.Consistency(err)
	}

	uc.metrics.ProductionRun(len(res.Consumed))
	for range res.Consumed {
		uc.metrics.StockMutation(entity.DirectionOUT)
	}
	uc.metrics.StockMutation(entity.DirectionIN)
	uc.log.Info().
		Str("product_id", res.ProductID).
		Int64("quantity", res.Quantity).
		Int64("ingredient_cost", res.TotalIngredientCost).
		Int64("new_cost", res.NewCost).
		Str("reference", res.Reference).
		Msg("producción registrada")
	return res, nil
}

// produce corre dentro de una transacción abierta. lines es la receta del terminado.
func produce(ctx context.Context, repos repository.Repos, in ProductionInput, lines []*entity.RecipeLine, now time.Time) (*ProductionResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	finished, err := repos.Products().GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if finished == nil {
		return nil, domain.ErrProductNotFound
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoRecipe
	}
	ingredientIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		ingredientIDs = append(ingredientIDs, l.IngredientID)
	}
	if err := DetectCycle(ctx, repos.Recipes(), in.ProductID, ingredientIDs); err != nil {
		return nil, err
	}

	// Bloqueo en orden de id: dos producciones que comparten ingredientes no se cruzan.
	locked, err := lockProducts(ctx, repos.Products(), in.ProductID, ingredientIDs)
	if err != nil {
		return nil, err
	}
	finished = locked[in.ProductID]

	ref := in.Reference
	if ref == "" {
		ref = "PRD-" + strings.ToUpper(uuid.New().String()[:8])
	}
	note := in.Note
	if note == "" {
		note = fmt.Sprintf("producción %s x%d", finished.Name, in.Quantity)
	}

	type consumption struct {
		ingredient *entity.Product
		qty        int64
		unitCost   int64
	}
	plan := make([]consumption, 0, len(lines))
	var totalCost int64
	for _, l := range lines {
		required := inventory.RequiredQuantity(in.Quantity, l.QtyPerUnit)
		if required <= 0 {
			continue
		}
		ing := locked[l.IngredientID]
		plan = append(plan, consumption{ingredient: ing, qty: required, unitCost: ing.Cost})
		totalCost += required * ing.Cost
	}

	res := &ProductionResult{
		ProductID:           finished.ID,
		Quantity:            in.Quantity,
		Reference:           ref,
		TotalIngredientCost: totalCost,
	}
	for _, c := range plan {
		unitCost := c.unitCost
		mut, err := Record(ctx, repos, c.ingredient, Movement{
			Direction: entity.DirectionOUT,
			Quantity:  c.qty,
			Date:      in.Date,
			Note:      note,
			Reference: ref,
			UnitCost:  &unitCost,
		}, now)
		if err != nil {
			return nil, err
		}
		res.Consumed = append(res.Consumed, mut)
	}

	incoming := inventory.FinishedGoodUnitCost(totalCost, in.Quantity, finished.Cost)
	out, err := Record(ctx, repos, finished, Movement{
		Direction:    entity.DirectionIN,
		Quantity:     in.Quantity,
		Date:         in.Date,
		Note:         note,
		Reference:    ref,
		UnitCost:     &incoming,
		ApplyCosting: true,
	}, now)
	if err != nil {
		return nil, err
	}
	res.IncomingUnitCost = incoming
	res.NewCost = finished.Cost
	res.Output = out
	return res, nil
}

// lockProducts bloquea el terminado y sus ingredientes en orden de id.
// Un ingrediente inexistente aborta con ErrMissingIngredient.
func lockProducts(ctx context.Context, products repository.ProductRepository, finishedID string, ingredientIDs []string) (map[string]*entity.Product, error) {
	ids := append([]string{finishedID}, ingredientIDs...)
	sort.Strings(ids)
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if _, ok := locked[id]; ok {
			continue
		}
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			if id == finishedID {
				return nil, domain.ErrProductNotFound
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingIngredient, id)
		}
		locked[id] = p
	}
	return locked, nil
}

// DetectCycle recorre la clausura de ingredientes de productID (incluyendo ingredientIDs, la
// receta candidata) y falla con ErrRecipeCycle si el propio producto aparece en ella.
func DetectCycle(ctx context.Context, recipes repository.RecipeRepository, productID string, ingredientIDs []string) error {
	visited := make(map[string]bool)
	stack := append([]string(nil), ingredientIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == productID {
			return domain.ErrRecipeCycle
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		lines, err := recipes.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		for _, l := range lines {
			stack = append(stack, l.IngredientID)
		}
	}
	return nil
}
