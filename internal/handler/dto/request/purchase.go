package request

type PurchaseRequest struct {
	ProductID string `json:"productId" binding:"required,max=100"`
}
