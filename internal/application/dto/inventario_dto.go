package dto

import "time"

// MovimientoResponse asiento del reporte de movimientos (cronológico inverso).
type MovimientoResponse struct {
	Nro         int       `json:"nro"`
	Fecha       time.Time `json:"fecha"`
	Tipo        string    `json:"tipo"`
	Producto    string    `json:"producto"`
	Cantidad    int       `json:"cantidad"`
	Responsable string    `json:"responsable"`
	Referencia  string    `json:"referencia"`
}

// HistorialMovimientoResponse asiento del historial de un producto, en orden
// cronológico. A diferencia del reporte general conserva el ID de transacción.
type HistorialMovimientoResponse struct {
	Nro           int       `json:"nro"`
	Fecha         time.Time `json:"fecha"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	Referencia    string    `json:"referencia"`
	TransaccionID string    `json:"transaccion_id"`
}

// AlertaStockResponse fila del reporte de stock bajo.
type AlertaStockResponse struct {
	ProductoID  int64  `json:"producto_id"`
	Producto    string `json:"producto"`
	Categoria   string `json:"categoria"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// DiscrepanciaResponse fila del chequeo de conciliación contador-vs-libro.
type DiscrepanciaResponse struct {
	ProductoID int64  `json:"producto_id"`
	Producto   string `json:"producto"`
	Stock      int    `json:"stock"`
	SumaLibro  int    `json:"suma_libro"`
	Diferencia int    `json:"diferencia"`
}
