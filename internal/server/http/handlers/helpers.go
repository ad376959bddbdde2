package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
	"github.com/dahorta/freshmarket/internal/server/http/middleware"
	"github.com/dahorta/freshmarket/internal/usecase"
)

// CurrentClaims extracts authenticated identity claims from context.
func CurrentClaims(c *gin.Context) pkgAuth.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return pkgAuth.Claims{}
	}
	claims, _ := val.(pkgAuth.Claims)
	return claims
}

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	return CurrentClaims(c).UserID
}

// statusFilter reads the optional ?status= query parameter. The second
// return value is false when the parameter is present but unknown.
func statusFilter(c *gin.Context) (*model.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status, err := model.ParseOrderStatus(raw)
	if err != nil {
		return nil, false
	}
	return &status, true
}

func toCartItemResponse(line usecase.LineView) dto.CartItemResponse {
	return dto.CartItemResponse{
		ProductID:      line.ProductID,
		Name:           line.Name,
		Unit:           line.Unit,
		Category:       line.Category,
		Image:          line.ImageURL,
		Quantity:       line.Quantity,
		UnitPrice:      line.BasePrice,
		PromoPrice:     line.PromoPrice,
		IsPromo:        line.IsPromo,
		EffectivePrice: line.EffectivePrice,
		LineTotal:      line.LineTotal,
		MinOrder:       line.MinOrder,
		Stock:          line.Stock,
		PendingRemoval: line.PendingRemoval,
	}
}

func toCartResponse(view usecase.CartView) dto.CartResponse {
	resp := dto.CartResponse{
		Items:      make([]dto.CartItemResponse, 0, len(view.Lines)),
		TotalItems: view.TotalItems,
		Subtotal:   view.Subtotal,
		Savings:    view.Savings,
	}
	for _, line := range view.Lines {
		resp.Items = append(resp.Items, toCartItemResponse(line))
	}
	return resp
}

func toMutationResponse(mutation usecase.CartMutation) dto.MutationResponse {
	resp := dto.MutationResponse{
		Result:  string(mutation.Kind),
		Warning: mutation.Warning,
		Clamped: string(mutation.Clamped),
	}
	if mutation.Line != nil {
		item := dto.CartItemResponse{
			ProductID:      mutation.Line.ProductID,
			Name:           mutation.Line.Name,
			Unit:           mutation.Line.Unit,
			Category:       mutation.Line.Category,
			Image:          mutation.Line.ImageURL,
			Quantity:       mutation.Line.Quantity,
			UnitPrice:      mutation.Line.BasePrice,
			PromoPrice:     mutation.Line.PromoPrice,
			IsPromo:        mutation.Line.IsPromo,
			EffectivePrice: usecase.EffectivePrice(*mutation.Line),
			LineTotal:      usecase.LineTotal(*mutation.Line),
			MinOrder:       mutation.Line.MinOrder,
			Stock:          mutation.Line.Stock,
			PendingRemoval: mutation.Kind == usecase.MutationWarned,
		}
		resp.Item = &item
	}
	return resp
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:     order.ID,
		Number: order.Number,
		Status: string(order.Status),
		Items:  make([]dto.OrderLineResponse, 0, len(order.Lines)),
		Address: dto.AddressPayload{
			Street:       order.ShippingAddress.Street,
			Number:       order.ShippingAddress.Number,
			Complement:   order.ShippingAddress.Complement,
			Neighborhood: order.ShippingAddress.Neighborhood,
			City:         order.ShippingAddress.City,
			State:        order.ShippingAddress.State,
			Zipcode:      order.ShippingAddress.Zipcode,
		},
		Contact: dto.ContactPayload{
			Name:  order.Contact.Name,
			Email: order.Contact.Email,
			Phone: order.Contact.Phone,
		},
		Subtotal:     order.Subtotal,
		DeliveryFee:  order.DeliveryFee,
		Total:        order.Total,
		Notes:        order.Notes,
		CreatedAt:    order.CreatedAt,
		DeliveryDate: order.DeliveryDate,
	}
	for _, line := range order.Lines {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Unit:      line.Unit,
			Image:     line.ImageURL,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return resp
}

func toPickingResponse(progress model.PickingProgress) dto.PickingProgressResponse {
	picked := progress.Picked
	if picked == nil {
		picked = []int{}
	}
	return dto.PickingProgressResponse{
		OrderID:  progress.OrderID,
		Picked:   picked,
		Total:    progress.Total,
		Complete: progress.Total > 0 && len(picked) == progress.Total,
	}
}
