package dto

import "github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"

func ToInventoryItemResponse(it *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:        string(it.ID),
		Nombre:    it.Nombre,
		Precio:    it.Precio,
		Stock:     it.Stock,
		UpdatedAt: it.UpdatedAt,
	}
}

func ToTransactionResponse(t *entity.LedgerTransaction) TransactionResponse {
	return TransactionResponse{ID: t.ID, Fecha: t.Fecha, Tipo: t.Tipo, Monto: t.Monto, Concepto: t.Concepto}
}

func ToOrderItems(items []entity.OrderLineItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResponse{
			ID:             string(it.GradeID),
			Nombre:         it.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return out
}

func ToSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		ClienteID:     s.ClienteID,
		ClienteNombre: s.ClienteNombre,
		ClienteCedula: s.ClienteCedula,
		Items:         ToOrderItems(s.Items),
		Total:         s.Total,
		VendedorEmail: s.VendedorEmail,
		Fecha:         s.Fecha,
		TransaccionID: s.TransaccionID,
	}
}

func ToPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		ProveedorID:     p.ProveedorID,
		ProveedorNombre: p.ProveedorNombre,
		ProveedorNit:    p.ProveedorNit,
		Items:           ToOrderItems(p.Items),
		Total:           p.Total,
		MedioDePago:     p.MedioDePago,
		Fecha:           p.Fecha,
		CreadoEn:        p.CreadoEn,
		TransaccionID:   p.TransaccionID,
	}
}

func ToClienteResponse(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:        c.ID,
		Cedula:    c.Cedula,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Lat:       c.Lat,
		Lng:       c.Lng,
		CreatedAt: c.CreatedAt,
	}
}

func ToProveedorResponse(p *entity.Proveedor) ProveedorResponse {
	return ProveedorResponse{
		ID:        p.ID,
		NIT:       p.NIT,
		Nombre:    p.Nombre,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		RutURL:    p.RutURL,
		CamaraURL: p.CamaraURL,
		CreatedAt: p.CreatedAt,
	}
}
