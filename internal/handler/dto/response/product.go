package response

import (
	"purchase-engine/internal/pkg/errs"
	"purchase-engine/internal/usecase/readmodel"

	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ProductID      string `json:"productId"`
	Kind           string `json:"kind"`
	Price          string `json:"price"`
	LocalizedPrice string `json:"localizedPrice"`
	Currency       string `json:"currency"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

func FromProducts(rms []readmodel.ProductRM) (ProductListResponse, error) {
	out := ProductListResponse{Products: make([]ProductResponse, 0, len(rms))}
	if err := copier.Copy(&out.Products, &rms); err != nil {
		return ProductListResponse{}, errs.Wrap(err, "copy products")
	}
	return out, nil
}
