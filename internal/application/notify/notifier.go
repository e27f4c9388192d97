package notify

import (
	"context"
	"sync"
	"time"

	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/pkg/logger"
)

// Notifier revisa periódicamente los productos con stock en o por debajo del
// mínimo y mantiene el último snapshot de alertas en memoria. Es consultivo:
// nunca escribe en inventario ni en el libro. Un chequeo fallido se loguea y
// el anterior snapshot se conserva hasta el siguiente tick.
type Notifier struct {
	invRepo   repository.InventarioRepository
	intervalo time.Duration
	log       *logger.Logger

	mu       sync.RWMutex
	alertas  []*entity.AlertaStock
	ultimoOK time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewNotifier construye el notificador. Con intervalo <= 0 usa 5 minutos.
func NewNotifier(invRepo repository.InventarioRepository, intervalo time.Duration, log *logger.Logger) *Notifier {
	if intervalo <= 0 {
		intervalo = 5 * time.Minute
	}
	return &Notifier{invRepo: invRepo, intervalo: intervalo, log: log}
}

// Start lanza el bucle periódico. El primer chequeo corre de inmediato.
func (n *Notifier) Start(ctx context.Context) {
	ctx, n.cancel = context.WithCancel(ctx)
	n.done = make(chan struct{})

	go func() {
		defer close(n.done)
		n.revisar()
		ticker := time.NewTicker(n.intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.revisar()
			}
		}
	}()
}

// Stop detiene el bucle y espera a que termine el chequeo en curso.
func (n *Notifier) Stop() {
	if n.cancel == nil {
		return
	}
	n.cancel()
	<-n.done
}

func (n *Notifier) revisar() {
	alertas, err := n.invRepo.ListBajoMinimo()
	if err != nil {
		n.log.Warn().Err(err).Msg("chequeo de stock bajo fallido")
		return
	}
	n.mu.Lock()
	n.alertas = alertas
	n.ultimoOK = time.Now()
	n.mu.Unlock()

	if len(alertas) > 0 {
		n.log.Info().Int("productos", len(alertas)).Msg("productos con stock bajo o agotado")
	}
}

// Alertas devuelve el último snapshot y su marca de tiempo.
func (n *Notifier) Alertas() ([]*entity.AlertaStock, time.Time) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*entity.AlertaStock, len(n.alertas))
	copy(out, n.alertas)
	return out, n.ultimoOK
}
