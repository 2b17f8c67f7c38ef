package orders

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Price       string `json:"price" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

type CheckoutLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"required,max=100"`
}

type CheckoutRequest struct {
	Lines           []CheckoutLine `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod   PaymentMethod  `json:"payment_method" binding:"required,oneof=CASH_ON_DELIVERY CREDIT_CARD WALLET"`
	DeliveryAddress AddressRequest `json:"delivery_address" binding:"required"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=SHIPPED DELIVERED"`
}
