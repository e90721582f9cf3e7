// seed carga un catálogo inicial de productos como eventos de ingreso (fuente "initial")
// y opcionalmente simula ventas aleatorias para poblar tablero e historial.
//
// Uso: go run ./cmd/seed -catalog catalogo.csv [-latin1] [-simulate 50] [-operator Ana]
//
// Columnas del CSV (con cabecera): sku,name,category,purchase_price,sale_price,quantity,expiry,lot
// category, expiry (YYYY-MM-DD) y lot son opcionales. Filas con lotes de devolución o anulación
// no se importan. Usa el almacenamiento de STORE_DRIVER; con "memory" solo valida el archivo y
// muestra el resultado.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/catalog"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-ledger/pkg/config"
	"github.com/jhoicas/bodega-ledger/pkg/logger"
)

type flags struct {
	catalogPath string
	latin1      bool
	simulate    int
	operator    string
}

func main() {
	var f flags
	flag.StringVar(&f.catalogPath, "catalog", "catalogo.csv", "ruta del catálogo CSV")
	flag.BoolVar(&f.latin1, "latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
	flag.IntVar(&f.simulate, "simulate", 0, "cantidad de ventas aleatorias a simular")
	flag.StringVar(&f.operator, "operator", "seed", "operador de los eventos")
	flag.Parse()

	if err := run(context.Background(), f); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	loc, _ := cfg.Bodega.Location()

	var txRunner inventory.TxRunner
	if cfg.Store.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migración del esquema: %w", err)
		}
		txRunner = postgres.NewTxRunner(pool)
	} else {
		txRunner = memory.NewStore()
	}
	ledger := inventory.NewLedgerUseCase(txRunner, inventory.WithLogger(log))
	sess := entity.Session{Operator: f.operator, DeviceID: "seed", Bodega: cfg.Bodega.Name, Connected: true}

	file, err := os.Open(f.catalogPath)
	if err != nil {
		return fmt.Errorf("abrir catálogo: %w", err)
	}
	defer file.Close()

	res, err := catalog.Read(file, catalog.Options{Latin1: f.latin1, Location: loc})
	if err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}
	for _, s := range res.Skipped {
		log.Warn().Int("line", s.Line).Str("sku", s.SKU).Str("lot", s.Lot).Str("origin", string(s.Origin)).
			Msg("fila omitida: el lote no es de ingreso")
	}

	var loaded, rejected int
	skus := make([]string, 0, len(res.Events))
	for _, p := range res.Events {
		evt, err := ledger.ProcessEvent(ctx, sess, p)
		if err != nil {
			rejected++
			continue
		}
		loaded++
		skus = append(skus, evt.Product.SKU)
	}
	fmt.Printf("Catálogo: %d ingresos aplicados, %d rechazados, %d omitidos\n", loaded, rejected, len(res.Skipped))

	if f.simulate <= 0 || len(skus) == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var sold, short int
	for i := 0; i < f.simulate; i++ {
		p := entity.EventPayload{
			Event:    entity.EventVenta,
			SKU:      skus[rng.Intn(len(skus))],
			Quantity: decimal.NewFromInt(int64(1 + rng.Intn(3))),
		}
		_, err := ledger.ProcessEvent(ctx, sess, p)
		switch {
		case err == nil:
			sold++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			return fmt.Errorf("venta simulada: %w", err)
		}
	}
	fmt.Printf("Simulación: %d ventas, %d sin stock\n", sold, short)
	return nil
}
