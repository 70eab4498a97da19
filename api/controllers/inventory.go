package controllers

import (
	"net/http"
	"strings"

	"github.com/rainadr/kasirkopi-backend/api/responses"
	"github.com/rainadr/kasirkopi-backend/api/validators"
	inventorysvc "github.com/rainadr/kasirkopi-backend/internal/inventory"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

func IngredientCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createIngredientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := enums.ParseIngredientUnit(strings.TrimSpace(payload.Unit))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit"))
			return
		}

		ingredient, err := svc.CreateIngredient(r.Context(), inventorysvc.CreateIngredientInput{
			Name:     strings.TrimSpace(payload.Name),
			Unit:     unit,
			Stock:    payload.Stock,
			MinStock: payload.MinStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ingredient)
	}
}

func IngredientList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("below_min") == "true" {
			rows, err := svc.ListBelowMinStock(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}

		rows, err := svc.ListIngredients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func IngredientDetail(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ingredient, err := svc.GetIngredient(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ingredient)
	}
}

func IngredientUpdate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateIngredientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateIngredient(r.Context(), id, inventorysvc.UpdateIngredientInput{
			Name:     payload.Name,
			MinStock: payload.MinStock,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// StockAdjust records a restock or a manual correction.
func StockAdjust(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movementType, err := enums.ParseStockMovementType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement type"))
			return
		}

		ingredient, err := svc.AdjustStock(r.Context(), inventorysvc.AdjustStockInput{
			IngredientID: id,
			Type:         movementType,
			Qty:          payload.Qty,
			Note:         payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ingredient)
	}
}

func StockMovementList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		movements, err := svc.ListMovements(r.Context(), id, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, movements)
	}
}

type createIngredientRequest struct {
	Name     string  `json:"name" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
	Stock    float64 `json:"stock" validate:"min=0"`
	MinStock float64 `json:"min_stock" validate:"min=0"`
}

type updateIngredientRequest struct {
	Name     *string  `json:"name,omitempty"`
	MinStock *float64 `json:"min_stock,omitempty" validate:"omitempty,min=0"`
}

type adjustStockRequest struct {
	Type string  `json:"type" validate:"required"`
	Qty  float64 `json:"qty" validate:"required"`
	Note *string `json:"note,omitempty"`
}
