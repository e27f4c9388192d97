package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/notify"
	"github.com/usm-ti/almacen-api/internal/testutil"
	"github.com/usm-ti/almacen-api/pkg/logger"
)

func buildNotifier(t *testing.T, intervalo time.Duration) (*notify.Notifier, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return notify.NewNotifier(alm.InventarioRepo(), intervalo, log), alm
}

func TestNotifier_ChequeoInmediatoAlArrancar(t *testing.T) {
	n, alm := buildNotifier(t, time.Hour) // intervalo largo: solo el chequeo inicial
	alm.AgregarProducto("TOR-001", "Tornillos", 2, 5)
	alm.AgregarProducto("TAL-020", "Taladro", 9, 1)

	n.Start(context.Background())
	defer n.Stop()

	require.Eventually(t, func() bool {
		alertas, _ := n.Alertas()
		return len(alertas) == 1
	}, 2*time.Second, 10*time.Millisecond, "el primer chequeo corre sin esperar el tick")

	alertas, ultimoOK := n.Alertas()
	assert.Equal(t, "Tornillos", alertas[0].Producto)
	assert.False(t, ultimoOK.IsZero())
}

func TestNotifier_RefrescaEnCadaTick(t *testing.T) {
	n, alm := buildNotifier(t, 20*time.Millisecond)
	id := alm.AgregarProducto("TOR-001", "Tornillos", 2, 5)

	n.Start(context.Background())
	defer n.Stop()

	require.Eventually(t, func() bool {
		alertas, _ := n.Alertas()
		return len(alertas) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Reponer stock: el siguiente tick debe vaciar el snapshot.
	alm.Inventario[id].Stock = 50
	require.Eventually(t, func() bool {
		alertas, _ := n.Alertas()
		return len(alertas) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotifier_StopEsIdempotenteSinStart(t *testing.T) {
	n, _ := buildNotifier(t, time.Minute)

	// Stop sin Start no debe bloquear ni entrar en pánico.
	n.Stop()
}
