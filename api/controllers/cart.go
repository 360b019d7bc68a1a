package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghorkotha/ghorkotha-backend/api/responses"
	"github.com/ghorkotha/ghorkotha-backend/api/validators"
	cartsvc "github.com/ghorkotha/ghorkotha-backend/internal/cart"
	productsvc "github.com/ghorkotha/ghorkotha-backend/internal/products"
	"github.com/ghorkotha/ghorkotha-backend/pkg/db/models"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

// CartFetch returns the session's cart.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := cartsvc.StoreFrom(r.Context())
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem resolves the product server side and merges it into the
// cart. Names and prices come from the catalog, never from the client.
func CartAddItem(products *productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Get(r.Context(), payload.ProductID, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := cartsvc.StoreFrom(r.Context())
		state, err := store.Add(r.Context(), cartItemFromProduct(product, payload.Quantity))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CartSetQuantity sets a line's quantity; zero removes the line.
func CartSetQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := cartsvc.StoreFrom(r.Context())
		state, err := store.SetQuantity(r.Context(), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := cartsvc.StoreFrom(r.Context())
		state, err := store.Remove(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CartClear empties the cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := cartsvc.StoreFrom(r.Context())
		state, err := store.Clear(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// CartLoad wholesale replaces the cart from a client snapshot, for
// example when a returning visitor's local copy is newer than the
// server's. Every line is re-resolved against the catalog; lines whose
// product has vanished or gone inactive are silently dropped, as are
// lines without a positive quantity.
func CartLoad(products *productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload loadCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]cartsvc.Item, 0, len(payload.Items))
		for _, line := range payload.Items {
			if line.Quantity <= 0 {
				continue
			}
			product, err := products.Get(r.Context(), line.ProductID, false)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					continue
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			items = append(items, cartItemFromProduct(product, line.Quantity))
		}

		store := cartsvc.StoreFrom(r.Context())
		state, err := store.Load(r.Context(), items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

type cartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type loadCartRequest struct {
	Items []cartLineRequest `json:"items" validate:"dive"`
}

func cartItemFromProduct(product *models.Product, quantity int) cartsvc.Item {
	imageURL := ""
	if product.ImageURL != nil {
		imageURL = *product.ImageURL
	}
	return cartsvc.Item{
		ProductID: product.ID,
		Name:      product.Name,
		NameBN:    product.NameBN,
		Price:     product.Price,
		ImageURL:  imageURL,
		Quantity:  quantity,
	}
}
