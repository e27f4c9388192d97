package inventory

import "github.com/usm-ti/almacen-api/internal/domain/entity"

// EstadoPara deriva el estado de stock a partir de (stock, stockMinimo)
// (servicio de dominio, función pura):
//
//	stock == 0            -> agotado
//	0 < stock <= mínimo   -> stock bajo
//	stock > mínimo        -> disponible
//
// "reservado" nunca se deriva aquí: es una marca manual que se protege con
// Inventario.EstadoBloqueado.
func EstadoPara(stock, stockMinimo int) string {
	switch {
	case stock == 0:
		return entity.EstadoAgotado
	case stock <= stockMinimo:
		return entity.EstadoStockBajo
	default:
		return entity.EstadoDisponible
	}
}
