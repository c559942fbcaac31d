package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// ProductUseCase casos de uso del catálogo. Cost y Stock se manejan vía movimientos.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	clock    ports.Clock
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repos repository.Repos, clock ports.Clock, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repos: repos, clock: clock, log: log}
}

// Create crea un producto. Un stock inicial se registra como entrada en el libro
// (costo = cost) para que stock y libro concilien desde el primer momento.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price < 0 || in.Cost < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := uc.clock()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Cost:      in.Cost,
		Photo:     in.Photo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products().Create(ctx, product); err != nil {
			return err
		}
		if in.Stock == 0 {
			return nil
		}
		cost := in.Cost
		_, err := inventory.Record(ctx, repos, product, inventory.Movement{
			Direction:    entity.DirectionIN,
			Quantity:     in.Stock,
			Date:         now.Format(domain.DateLayout),
			Note:         "stock inicial",
			UnitCost:     &cost,
			ApplyCosting: true,
		}, now)
		return err
	})
	if err != nil {
		return nil, domain.Consistency(err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Int64("stock", product.Stock).Msg("producto creado")
	return toProductResponse(product, nil, nil), nil
}

// GetByID obtiene un producto con sus opciones de precio y su receta.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	options, err := uc.repos.PriceOptions().ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe, err := uc.repos.Recipes().ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, options, recipe), nil
}

// Update actualiza nombre, precio base y foto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		product, err = repos.Products().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.Name != nil {
			if *in.Name == "" {
				return domain.ErrInvalidInput
			}
			product.Name = *in.Name
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return domain.ErrInvalidPrice
			}
			product.Price = *in.Price
		}
		if in.Photo != nil {
			product.Photo = *in.Photo
		}
		product.UpdatedAt = uc.clock()
		return repos.Products().Update(ctx, product)
	})
	if err != nil {
		return nil, domain.Consistency(err)
	}
	return toProductResponse(product, nil, nil), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Products().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil, nil))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page, len(list)),
	}, nil
}

// ReplacePrices reemplaza las opciones de precio. Como máximo una puede ser la opción por defecto.
func (uc *ProductUseCase) ReplacePrices(ctx context.Context, productID string, in dto.ReplacePricesRequest) (*dto.ProductResponse, error) {
	defaults := 0
	options := make([]*entity.PriceOption, 0, len(in.Options))
	for _, o := range in.Options {
		if o.Label == "" {
			return nil, domain.ErrInvalidInput
		}
		if o.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		if o.IsDefault {
			defaults++
		}
		options = append(options, &entity.PriceOption{
			ID:        uuid.New().String(),
			ProductID: productID,
			Label:     o.Label,
			Price:     o.Price,
			IsDefault: o.IsDefault,
		})
	}
	if defaults > 1 {
		return nil, domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		return repos.PriceOptions().ReplaceForProduct(ctx, productID, options)
	})
	if err != nil {
		return nil, domain.Consistency(err)
	}
	return uc.GetByID(ctx, productID)
}

// ReplaceRecipe reemplaza la receta completa (vacía = el producto deja de ser fabricado).
// Rechaza ingredientes inexistentes, repetidos, cantidades no positivas y ciclos.
func (uc *ProductUseCase) ReplaceRecipe(ctx context.Context, productID string, in dto.ReplaceRecipeRequest) (*dto.ProductResponse, error) {
	seen := make(map[string]bool, len(in.Lines))
	lines := make([]*entity.RecipeLine, 0, len(in.Lines))
	ingredientIDs := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.IngredientID == "" || seen[l.IngredientID] {
			return nil, domain.ErrInvalidInput
		}
		if l.IngredientID == productID {
			return nil, domain.ErrRecipeCycle
		}
		if !l.QtyPerUnit.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		seen[l.IngredientID] = true
		ingredientIDs = append(ingredientIDs, l.IngredientID)
		lines = append(lines, &entity.RecipeLine{
			ID:           uuid.New().String(),
			ProductID:    productID,
			IngredientID: l.IngredientID,
			QtyPerUnit:   l.QtyPerUnit,
		})
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		for _, id := range ingredientIDs {
			ing, err := repos.Products().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if ing == nil {
				return domain.ErrMissingIngredient
			}
		}
		if err := inventory.DetectCycle(ctx, repos.Recipes(), productID, ingredientIDs); err != nil {
			return err
		}
		if err := repos.Recipes().ReplaceForProduct(ctx, productID, lines); err != nil {
			return err
		}
		product.Manufactured = len(lines) > 0
		product.UpdatedAt = uc.clock()
		return repos.Products().Update(ctx, product)
	})
	if err != nil {
		return nil, domain.Consistency(err)
	}
	uc.log.Info().Str("product_id", productID).Int("lines", len(lines)).Msg("receta reemplazada")
	return uc.GetByID(ctx, productID)
}

func toProductResponse(p *entity.Product, options []*entity.PriceOption, recipe []*entity.RecipeLine) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Cost:         p.Cost,
		Stock:        p.Stock,
		Manufactured: p.Manufactured,
		Photo:        p.Photo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, o := range options {
		out.PriceOptions = append(out.PriceOptions, dto.PriceOptionResponse{ID: o.ID, Label: o.Label, Price: o.Price, IsDefault: o.IsDefault})
	}
	for _, l := range recipe {
		out.Recipe = append(out.Recipe, dto.RecipeLineResponse{IngredientID: l.IngredientID, QtyPerUnit: l.QtyPerUnit})
	}
	return out
}

