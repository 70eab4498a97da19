package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/api/responses"
	"github.com/rainadr/kasirkopi-backend/api/validators"
	productsvc "github.com/rainadr/kasirkopi-backend/internal/products"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters productsvc.ProductFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id filter"))
				return
			}
			filters.CategoryID = &categoryID
		}
		filters.ActiveOnly = r.URL.Query().Get("active") == "true"
		filters.Search = strings.TrimSpace(r.URL.Query().Get("q"))

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		list, err := svc.ListProducts(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"items":       list.Items,
			"next_cursor": list.NextCursor,
		})
	}
}

func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateProduct(r.Context(), id, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ProductSetChannelPrice overrides the price for one marketplace channel.
func ProductSetChannelPrice(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload channelPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		channel, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.Channel))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid channel"))
			return
		}

		if err := svc.SetChannelPrice(r.Context(), id, productsvc.ChannelPriceInput{
			Channel: channel,
			Price:   payload.Price,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ProductSetRecipe replaces the ingredient consumption list.
func ProductSetRecipe(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setRecipeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]productsvc.RecipeItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			ingredientID, err := uuid.Parse(strings.TrimSpace(item.IngredientID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ingredient id"))
				return
			}
			items = append(items, productsvc.RecipeItemInput{
				IngredientID: ingredientID,
				QtyPerUnit:   item.QtyPerUnit,
			})
		}

		if err := svc.SetRecipe(r.Context(), id, items); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createProductRequest struct {
	Name          string                `json:"name" validate:"required"`
	CategoryID    *string               `json:"category_id,omitempty"`
	SKU           *string               `json:"sku,omitempty"`
	Price         int64                 `json:"price" validate:"min=0"`
	ChannelPrices []channelPriceRequest `json:"channel_prices,omitempty" validate:"omitempty,dive"`
	Recipe        []recipeItemRequest   `json:"recipe,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name       *string `json:"name,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Price      *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type channelPriceRequest struct {
	Channel string `json:"channel" validate:"required"`
	Price   int64  `json:"price" validate:"min=0"`
}

type recipeItemRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
	QtyPerUnit   float64 `json:"qty_per_unit" validate:"required,gt=0"`
}

type setRecipeRequest struct {
	Items []recipeItemRequest `json:"items" validate:"dive"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	input := productsvc.CreateProductInput{
		Name:  strings.TrimSpace(r.Name),
		SKU:   r.SKU,
		Price: r.Price,
	}

	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) != "" {
		categoryID, err := uuid.Parse(strings.TrimSpace(*r.CategoryID))
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
		}
		input.CategoryID = &categoryID
	}

	for _, cp := range r.ChannelPrices {
		channel, err := enums.ParsePaymentMethod(strings.TrimSpace(cp.Channel))
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid channel")
		}
		input.ChannelPrices = append(input.ChannelPrices, productsvc.ChannelPriceInput{
			Channel: channel,
			Price:   cp.Price,
		})
	}

	for _, item := range r.Recipe {
		ingredientID, err := uuid.Parse(strings.TrimSpace(item.IngredientID))
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ingredient id")
		}
		input.Recipe = append(input.Recipe, productsvc.RecipeItemInput{
			IngredientID: ingredientID,
			QtyPerUnit:   item.QtyPerUnit,
		})
	}

	return input, nil
}

func (r updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:     r.Name,
		Price:    r.Price,
		IsActive: r.IsActive,
	}
	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) != "" {
		categoryID, err := uuid.Parse(strings.TrimSpace(*r.CategoryID))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
		}
		input.CategoryID = &categoryID
	}
	return input, nil
}
