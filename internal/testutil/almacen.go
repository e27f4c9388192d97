// Package testutil provee implementaciones en memoria de los puertos de
// persistencia, para probar los casos de uso sin base de datos. El TxRunner
// emula el todo-o-nada de una transacción con snapshot y restauración.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/usm-ti/almacen-api/internal/application/inventory"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	domaininv "github.com/usm-ti/almacen-api/internal/domain/inventory"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
)

// AlmacenMemoria es el estado compartido de los repos en memoria.
type AlmacenMemoria struct {
	Productos    map[int64]*entity.Producto
	Inventario   map[int64]*entity.Inventario // clave: producto_id
	Movimientos  []*entity.Movimiento
	Usuarios     map[int64]*entity.Usuario
	Solicitudes  map[int64]*entity.Solicitud
	Detalles     []*entity.DetalleSolicitud
	Catalogos    map[string]map[int64]*entity.Catalogo // clave externa: tabla
	Solicitantes map[int64]*entity.Solicitante
	Compras      []*entity.SolicitudCompra
	Proveedores  map[int64]*entity.Proveedor
	ProvCats     map[int64][]int64 // proveedor -> IDs de categorías

	seq int64
}

// NuevoAlmacen construye un almacén vacío con las cuatro tablas de referencia.
func NuevoAlmacen() *AlmacenMemoria {
	return &AlmacenMemoria{
		Productos:   map[int64]*entity.Producto{},
		Inventario:  map[int64]*entity.Inventario{},
		Usuarios:    map[int64]*entity.Usuario{},
		Solicitudes: map[int64]*entity.Solicitud{},
		Catalogos: map[string]map[int64]*entity.Catalogo{
			"categorias":    {},
			"marcas":        {},
			"ubicaciones":   {},
			"departamentos": {},
		},
		Solicitantes: map[int64]*entity.Solicitante{},
		Proveedores:  map[int64]*entity.Proveedor{},
		ProvCats:     map[int64][]int64{},
	}
}

func (a *AlmacenMemoria) nextID() int64 {
	a.seq++
	return a.seq
}

// AgregarCatalogo inserta una fila de referencia y devuelve su ID.
func (a *AlmacenMemoria) AgregarCatalogo(tabla, nombre string, activo bool) int64 {
	id := a.nextID()
	a.Catalogos[tabla][id] = &entity.Catalogo{ID: id, Nombre: nombre, Activo: activo}
	return id
}

// AgregarUsuario inserta una cuenta y devuelve su ID.
func (a *AlmacenMemoria) AgregarUsuario(nombre string, activo bool) int64 {
	id := a.nextID()
	a.Usuarios[id] = &entity.Usuario{ID: id, NombreCompleto: nombre, Usuario: nombre, Activo: activo}
	return id
}

// AgregarSolicitante inserta un solicitante y devuelve su ID.
func (a *AlmacenMemoria) AgregarSolicitante(nombre string, activo bool) int64 {
	id := a.nextID()
	a.Solicitantes[id] = &entity.Solicitante{ID: id, Cedula: nombre, Nombre: nombre, Activo: activo}
	return id
}

// AgregarProducto inserta producto + fila de inventario con el stock dado y
// devuelve el ID del producto. El estado se deriva de (stock, minimo).
func (a *AlmacenMemoria) AgregarProducto(codigo, nombre string, stock, minimo int) int64 {
	id := a.nextID()
	a.Productos[id] = &entity.Producto{ID: id, Codigo: codigo, Nombre: nombre, StockMinimo: minimo, Activo: true}
	a.Inventario[id] = &entity.Inventario{
		ID:          a.nextID(),
		ProductoID:  id,
		Stock:       stock,
		EstadoStock: domaininv.EstadoPara(stock, minimo),
	}
	return id
}

// ── ProductoRepository ────────────────────────────────────────────────────────

// ProductosRepo devuelve el adaptador del puerto de productos.
func (a *AlmacenMemoria) ProductosRepo() repository.ProductoRepository { return (*productoFake)(a) }

type productoFake AlmacenMemoria

func (r *productoFake) Create(p *entity.Producto) error {
	for _, otro := range r.Productos {
		if otro.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	p.ID = (*AlmacenMemoria)(r).nextID()
	r.Productos[p.ID] = p
	return nil
}

func (r *productoFake) GetByID(id int64) (*entity.Producto, error) {
	return r.Productos[id], nil
}

func (r *productoFake) GetByCodigo(codigo string) (*entity.Producto, error) {
	for _, p := range r.Productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, nil
}

func (r *productoFake) GetNombre(id int64) (string, error) {
	if p := r.Productos[id]; p != nil {
		return p.Nombre, nil
	}
	return "", nil
}

func (r *productoFake) Update(p *entity.Producto) error {
	if _, ok := r.Productos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Productos[p.ID] = p
	return nil
}

func (r *productoFake) SoftDelete(id int64) error {
	p, ok := r.Productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Activo = false
	return nil
}

func (r *productoFake) ListInventario(filtro repository.FiltroInventario) ([]*entity.FilaInventario, error) {
	var filas []*entity.FilaInventario
	for _, p := range r.Productos {
		if !p.Activo {
			continue
		}
		if filtro.Busqueda != "" &&
			!strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filtro.Busqueda)) &&
			!strings.Contains(strings.ToLower(p.Codigo), strings.ToLower(filtro.Busqueda)) {
			continue
		}
		fila := &entity.FilaInventario{
			ProductoID:  p.ID,
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			Marca:       "N/A",
			Categoria:   "N/A",
			Ubicacion:   "N/A",
			StockMinimo: p.StockMinimo,
			EstadoStock: entity.EstadoAgotado,
		}
		if inv := r.Inventario[p.ID]; inv != nil {
			fila.Stock = inv.Stock
			fila.EstadoStock = inv.EstadoStock
			fila.EstadoBloqueado = inv.EstadoBloqueado
		}
		if p.CategoriaID != nil {
			if cat := r.Catalogos["categorias"][*p.CategoriaID]; cat != nil {
				fila.Categoria = cat.Nombre
			}
		}
		if filtro.Categoria != "" && fila.Categoria != filtro.Categoria {
			continue
		}
		if filtro.Estado != "" && fila.EstadoStock != filtro.Estado {
			continue
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

// ── InventarioRepository ──────────────────────────────────────────────────────

// InventarioRepo devuelve el adaptador del puerto de inventario.
func (a *AlmacenMemoria) InventarioRepo() repository.InventarioRepository { return (*invFake)(a) }

type invFake AlmacenMemoria

func (r *invFake) GetByProducto(productoID int64) (*entity.Inventario, error) {
	return r.Inventario[productoID], nil
}

func (r *invFake) Insert(inv *entity.Inventario) error {
	if _, ok := r.Inventario[inv.ProductoID]; ok {
		return domain.ErrDuplicate
	}
	inv.ID = (*AlmacenMemoria)(r).nextID()
	r.Inventario[inv.ProductoID] = inv
	return nil
}

func (r *invFake) Update(inv *entity.Inventario) error {
	existente := r.Inventario[inv.ProductoID]
	if existente == nil {
		return domain.ErrNotFound
	}
	inv.ID = existente.ID
	r.Inventario[inv.ProductoID] = inv
	return nil
}

func (r *invFake) AddStock(productoID int64, cantidad int) error {
	inv := r.Inventario[productoID]
	if inv == nil {
		return domain.ErrNotFound
	}
	inv.Stock += cantidad
	return nil
}

func (r *invFake) DescontarStock(productoID int64, cantidad int) (bool, error) {
	inv := r.Inventario[productoID]
	if inv == nil || inv.Stock < cantidad {
		return false, nil
	}
	inv.Stock -= cantidad
	return true, nil
}

func (r *invFake) UpdateEstado(productoID int64, estado string) error {
	inv := r.Inventario[productoID]
	if inv == nil {
		return domain.ErrNotFound
	}
	inv.EstadoStock = estado
	return nil
}

func (r *invFake) ListBajoMinimo() ([]*entity.AlertaStock, error) {
	var out []*entity.AlertaStock
	for id, p := range r.Productos {
		inv := r.Inventario[id]
		if !p.Activo || inv == nil || inv.Stock > p.StockMinimo {
			continue
		}
		out = append(out, &entity.AlertaStock{
			ProductoID:  id,
			Producto:    p.Nombre,
			Stock:       inv.Stock,
			StockMinimo: p.StockMinimo,
		})
	}
	return out, nil
}

func (r *invFake) Discrepancias() ([]*entity.Discrepancia, error) {
	sumas := map[int64]int{}
	for _, m := range r.Movimientos {
		if m.Tipo == entity.MovimientoEntrada {
			sumas[m.ProductoID] += m.Cantidad
		} else {
			sumas[m.ProductoID] -= m.Cantidad
		}
	}
	var out []*entity.Discrepancia
	for id, p := range r.Productos {
		inv := r.Inventario[id]
		if !p.Activo || inv == nil {
			continue
		}
		if inv.Stock != sumas[id] {
			out = append(out, &entity.Discrepancia{
				ProductoID: id,
				Producto:   p.Nombre,
				Stock:      inv.Stock,
				SumaLibro:  sumas[id],
				Diferencia: inv.Stock - sumas[id],
			})
		}
	}
	return out, nil
}

// ── MovimientoRepository ──────────────────────────────────────────────────────

// MovimientosRepo devuelve el adaptador del puerto del libro.
func (a *AlmacenMemoria) MovimientosRepo() repository.MovimientoRepository { return (*movFake)(a) }

type movFake AlmacenMemoria

func (r *movFake) Create(m *entity.Movimiento) error {
	m.ID = (*AlmacenMemoria)(r).nextID()
	m.Fecha = time.Now()
	r.Movimientos = append(r.Movimientos, m)
	return nil
}

func (r *movFake) List(filtro repository.FiltroMovimientos) ([]*entity.MovimientoDetalle, error) {
	var out []*entity.MovimientoDetalle
	for i := len(r.Movimientos) - 1; i >= 0; i-- {
		m := r.Movimientos[i]
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if filtro.ProductoID != 0 && m.ProductoID != filtro.ProductoID {
			continue
		}
		responsable := "N/A"
		if m.ResponsableID != nil {
			if u := r.Usuarios[*m.ResponsableID]; u != nil {
				responsable = u.NombreCompleto
			}
		}
		producto := ""
		if p := r.Productos[m.ProductoID]; p != nil {
			producto = p.Nombre
		}
		out = append(out, &entity.MovimientoDetalle{
			ID:          m.ID,
			Fecha:       m.Fecha,
			Tipo:        m.Tipo,
			Producto:    producto,
			Cantidad:    m.Cantidad,
			Responsable: responsable,
			Referencia:  m.Referencia,
		})
	}
	return out, nil
}

func (r *movFake) ListByProducto(productoID int64) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, m := range r.Movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── UsuarioRepository ─────────────────────────────────────────────────────────

// UsuariosRepo devuelve el adaptador del puerto de usuarios.
func (a *AlmacenMemoria) UsuariosRepo() repository.UsuarioRepository { return (*usuarioFake)(a) }

type usuarioFake AlmacenMemoria

func (r *usuarioFake) Create(u *entity.Usuario) error {
	for _, otro := range r.Usuarios {
		if otro.Usuario == u.Usuario || otro.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	u.ID = (*AlmacenMemoria)(r).nextID()
	u.FechaRegistro = time.Now()
	r.Usuarios[u.ID] = u
	return nil
}

func (r *usuarioFake) GetByID(id int64) (*entity.Usuario, error) { return r.Usuarios[id], nil }

func (r *usuarioFake) FindByUsuario(usuario string) (*entity.Usuario, error) {
	for _, u := range r.Usuarios {
		if u.Usuario == usuario {
			return u, nil
		}
	}
	return nil, nil
}

func (r *usuarioFake) FindByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.Usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *usuarioFake) Exists(id int64) (bool, error) {
	_, ok := r.Usuarios[id]
	return ok, nil
}

func (r *usuarioFake) UpdatePassword(id int64, passwordHash string) error {
	u, ok := r.Usuarios[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *usuarioFake) SetActivo(id int64, activo bool) error {
	u, ok := r.Usuarios[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Activo = activo
	return nil
}

func (r *usuarioFake) List() ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.Usuarios {
		out = append(out, u)
	}
	return out, nil
}

// ── SolicitudRepository ───────────────────────────────────────────────────────

// SolicitudesRepo devuelve el adaptador del puerto de entregas.
func (a *AlmacenMemoria) SolicitudesRepo() repository.SolicitudRepository { return (*solicitudFake)(a) }

type solicitudFake AlmacenMemoria

func (r *solicitudFake) CreateCabecera(s *entity.Solicitud) (int64, error) {
	s.ID = (*AlmacenMemoria)(r).nextID()
	s.Fecha = time.Now()
	r.Solicitudes[s.ID] = s
	return s.ID, nil
}

func (r *solicitudFake) CreateDetalle(d *entity.DetalleSolicitud) error {
	d.ID = (*AlmacenMemoria)(r).nextID()
	r.Detalles = append(r.Detalles, d)
	return nil
}

func (r *solicitudFake) resumen(s *entity.Solicitud) *entity.SolicitudResumen {
	res := &entity.SolicitudResumen{
		ID:         s.ID,
		Fecha:      s.Fecha,
		Comentario: s.Comentario,
	}
	res.Departamento, res.Solicitante, res.Responsable = "N/A", "N/A", "N/A"
	if d := r.Catalogos["departamentos"][s.DepartamentoID]; d != nil {
		res.Departamento = d.Nombre
	}
	if so := r.Solicitantes[s.SolicitanteID]; so != nil {
		res.Solicitante = so.Nombre
	}
	if u := r.Usuarios[s.ResponsableID]; u != nil {
		res.Responsable = u.NombreCompleto
	}
	return res
}

func (r *solicitudFake) List(filtro repository.FiltroSolicitudes) ([]*entity.SolicitudResumen, error) {
	var out []*entity.SolicitudResumen
	for _, s := range r.Solicitudes {
		if filtro.Busqueda != "" && !strings.Contains(strings.ToLower(s.Comentario), strings.ToLower(filtro.Busqueda)) {
			continue
		}
		out = append(out, r.resumen(s))
	}
	return out, nil
}

func (r *solicitudFake) Get(id int64) (*entity.SolicitudResumen, error) {
	s := r.Solicitudes[id]
	if s == nil {
		return nil, nil
	}
	return r.resumen(s), nil
}

func (r *solicitudFake) Lineas(solicitudID int64) ([]*entity.LineaSolicitud, error) {
	var out []*entity.LineaSolicitud
	for _, d := range r.Detalles {
		if d.SolicitudID != solicitudID {
			continue
		}
		linea := &entity.LineaSolicitud{Cantidad: d.Cantidad}
		if p := r.Productos[d.ProductoID]; p != nil {
			linea.Producto = p.Nombre
			linea.Codigo = p.Codigo
		}
		out = append(out, linea)
	}
	return out, nil
}

// ── CatalogoRepository / SolicitanteRepository ────────────────────────────────

// CatalogoRepo devuelve el adaptador para una tabla de referencia.
func (a *AlmacenMemoria) CatalogoRepo(tabla string, soportaSoftDelete bool) repository.CatalogoRepository {
	return &catalogoFake{a: a, tabla: tabla, soportaSoftDelete: soportaSoftDelete}
}

type catalogoFake struct {
	a                 *AlmacenMemoria
	tabla             string
	soportaSoftDelete bool
}

func (r *catalogoFake) List(soloActivos bool) ([]*entity.Catalogo, error) {
	var out []*entity.Catalogo
	for _, c := range r.a.Catalogos[r.tabla] {
		if soloActivos && !c.Activo {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *catalogoFake) GetByID(id int64) (*entity.Catalogo, error) {
	return r.a.Catalogos[r.tabla][id], nil
}

func (r *catalogoFake) GetPorNombre(nombre string, soloActivos bool) (*entity.Catalogo, error) {
	for _, c := range r.a.Catalogos[r.tabla] {
		if c.Nombre == nombre && (!soloActivos || c.Activo) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *catalogoFake) Add(nombre string) (*entity.Catalogo, error) {
	id := r.a.AgregarCatalogo(r.tabla, nombre, true)
	return r.a.Catalogos[r.tabla][id], nil
}

func (r *catalogoFake) Rename(id int64, nombre string) error {
	c := r.a.Catalogos[r.tabla][id]
	if c == nil {
		return domain.ErrNotFound
	}
	c.Nombre = nombre
	return nil
}

func (r *catalogoFake) SetActivo(id int64, activo bool) error {
	if !r.soportaSoftDelete {
		return domain.ErrSinSoftDelete
	}
	c := r.a.Catalogos[r.tabla][id]
	if c == nil {
		return domain.ErrNotFound
	}
	c.Activo = activo
	return nil
}

func (r *catalogoFake) SoportaSoftDelete() bool { return r.soportaSoftDelete }

// SolicitantesRepo devuelve el adaptador del puerto de solicitantes.
func (a *AlmacenMemoria) SolicitantesRepo() repository.SolicitanteRepository {
	return (*solicitanteFake)(a)
}

type solicitanteFake AlmacenMemoria

func (r *solicitanteFake) List(soloActivos bool) ([]*entity.Solicitante, error) {
	var out []*entity.Solicitante
	for _, s := range r.Solicitantes {
		if soloActivos && !s.Activo {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *solicitanteFake) GetByID(id int64) (*entity.Solicitante, error) {
	return r.Solicitantes[id], nil
}

func (r *solicitanteFake) Add(s *entity.Solicitante) error {
	for _, otro := range r.Solicitantes {
		if otro.Cedula == s.Cedula {
			return domain.ErrDuplicate
		}
	}
	s.ID = (*AlmacenMemoria)(r).nextID()
	r.Solicitantes[s.ID] = s
	return nil
}

func (r *solicitanteFake) SetActivo(id int64, activo bool) error {
	s, ok := r.Solicitantes[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Activo = activo
	return nil
}

// ── CompraRepository ──────────────────────────────────────────────────────────

// ComprasRepo devuelve el adaptador del puerto de la cola de compras.
func (a *AlmacenMemoria) ComprasRepo() repository.CompraRepository { return (*compraFake)(a) }

type compraFake AlmacenMemoria

func pesoPrioridad(p string) int {
	switch p {
	case entity.PrioridadAlta:
		return 1
	case entity.PrioridadMedia:
		return 2
	default:
		return 3
	}
}

func (r *compraFake) Create(c *entity.SolicitudCompra) error {
	c.ID = (*AlmacenMemoria)(r).nextID()
	c.Fecha = time.Now()
	r.Compras = append(r.Compras, c)
	return nil
}

func (r *compraFake) List(estado, prioridad string) ([]*entity.SolicitudCompra, error) {
	var out []*entity.SolicitudCompra
	for _, c := range r.Compras {
		if estado != "" && c.Estado != estado {
			continue
		}
		if prioridad != "" && c.Prioridad != prioridad {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := pesoPrioridad(out[i].Prioridad), pesoPrioridad(out[j].Prioridad)
		if pi != pj {
			return pi < pj
		}
		return out[i].Fecha.After(out[j].Fecha)
	})
	return out, nil
}

func (r *compraFake) GetByID(id int64) (*entity.SolicitudCompra, error) {
	for _, c := range r.Compras {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *compraFake) UpdateEstado(id int64, estado string) error {
	for _, c := range r.Compras {
		if c.ID == id {
			c.Estado = estado
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *compraFake) Delete(id int64) error {
	for i, c := range r.Compras {
		if c.ID == id {
			r.Compras = append(r.Compras[:i], r.Compras[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── ProveedorRepository ───────────────────────────────────────────────────────

// ProveedoresRepo devuelve el adaptador del puerto de proveedores.
func (a *AlmacenMemoria) ProveedoresRepo() repository.ProveedorRepository {
	return (*proveedorFake)(a)
}

type proveedorFake AlmacenMemoria

func (r *proveedorFake) Create(p *entity.Proveedor) error {
	for _, otro := range r.Proveedores {
		if otro.Nombre == p.Nombre {
			return domain.ErrDuplicate
		}
	}
	p.ID = (*AlmacenMemoria)(r).nextID()
	r.Proveedores[p.ID] = p
	return nil
}

func (r *proveedorFake) GetByID(id int64) (*entity.Proveedor, error) {
	p := r.Proveedores[id]
	if p == nil {
		return nil, nil
	}
	p.Categorias = nil
	for _, catID := range r.ProvCats[id] {
		if cat := r.Catalogos["categorias"][catID]; cat != nil {
			p.Categorias = append(p.Categorias, cat.Nombre)
		}
	}
	return p, nil
}

func (r *proveedorFake) GetByNombre(nombre string) (*entity.Proveedor, error) {
	for _, p := range r.Proveedores {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, nil
}

func (r *proveedorFake) Update(p *entity.Proveedor) error {
	if _, ok := r.Proveedores[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Proveedores[p.ID] = p
	return nil
}

func (r *proveedorFake) SoftDelete(id int64) error {
	p, ok := r.Proveedores[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Activo = false
	return nil
}

func (r *proveedorFake) List(filtro repository.FiltroProveedores) ([]*entity.Proveedor, error) {
	var out []*entity.Proveedor
	for id, p := range r.Proveedores {
		if !p.Activo {
			continue
		}
		if filtro.Valoracion != 0 && (p.Valoracion == nil || *p.Valoracion != filtro.Valoracion) {
			continue
		}
		if filtro.ManejoPrecios != "" && p.ManejoPrecios != filtro.ManejoPrecios {
			continue
		}
		cargado, _ := r.GetByID(id)
		if filtro.Categoria != "" {
			pertenece := false
			for _, nombre := range cargado.Categorias {
				if nombre == filtro.Categoria {
					pertenece = true
					break
				}
			}
			if !pertenece {
				continue
			}
		}
		out = append(out, cargado)
	}
	return out, nil
}

func (r *proveedorFake) SetCategorias(proveedorID int64, categoriaIDs []int64) error {
	r.ProvCats[proveedorID] = append([]int64(nil), categoriaIDs...)
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner devuelve un runner que emula el todo-o-nada de una transacción:
// toma un snapshot del estado y lo restaura si el callback falla.
func (a *AlmacenMemoria) TxRunner() inventory.TxRunner { return &txFake{a: a} }

type txFake struct {
	a *AlmacenMemoria
}

func (t *txFake) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	snap := t.a.snapshot()
	if err := fn(t.a.MovimientosRepo(), t.a.InventarioRepo(), t.a.ProductosRepo()); err != nil {
		t.a.restaurar(snap)
		return err
	}
	return nil
}

func (t *txFake) RunEntrega(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	solicitudRepo repository.SolicitudRepository,
) error) error {
	snap := t.a.snapshot()
	if err := fn(t.a.MovimientosRepo(), t.a.InventarioRepo(), t.a.ProductosRepo(), t.a.SolicitudesRepo()); err != nil {
		t.a.restaurar(snap)
		return err
	}
	return nil
}

type snapshot struct {
	productos   map[int64]*entity.Producto
	inventario  map[int64]*entity.Inventario
	movimientos []*entity.Movimiento
	solicitudes map[int64]*entity.Solicitud
	detalles    []*entity.DetalleSolicitud
	seq         int64
}

func (a *AlmacenMemoria) snapshot() snapshot {
	s := snapshot{
		productos:   make(map[int64]*entity.Producto, len(a.Productos)),
		inventario:  make(map[int64]*entity.Inventario, len(a.Inventario)),
		movimientos: append([]*entity.Movimiento(nil), a.Movimientos...),
		solicitudes: make(map[int64]*entity.Solicitud, len(a.Solicitudes)),
		detalles:    append([]*entity.DetalleSolicitud(nil), a.Detalles...),
		seq:         a.seq,
	}
	for id, p := range a.Productos {
		copia := *p
		s.productos[id] = &copia
	}
	for id, inv := range a.Inventario {
		copia := *inv
		s.inventario[id] = &copia
	}
	for id, sol := range a.Solicitudes {
		copia := *sol
		s.solicitudes[id] = &copia
	}
	return s
}

func (a *AlmacenMemoria) restaurar(s snapshot) {
	a.Productos = s.productos
	a.Inventario = s.inventario
	a.Movimientos = s.movimientos
	a.Solicitudes = s.solicitudes
	a.Detalles = s.detalles
	a.seq = s.seq
}
