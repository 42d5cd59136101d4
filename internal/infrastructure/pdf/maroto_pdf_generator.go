// Package pdf genera el reporte A4 del historial de movimientos con saldo acumulado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmadist + título   │  Ítem + rango de fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: apertura / entradas / salidas / ajustes / saldo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Dirección | Cant | Cambio | Saldo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: página N de M + fecha de generación                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
)

var _ ports.LedgerPDFRenderer = (*MarotoLedgerGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 98, Blue: 65}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006 15:04"

// MarotoLedgerGenerator implementa ports.LedgerPDFRenderer con Maroto v2.
type MarotoLedgerGenerator struct{}

func NewMarotoLedgerGenerator() *MarotoLedgerGenerator { return &MarotoLedgerGenerator{} }

// RenderLedger genera el PDF y devuelve sus bytes.
func (g *MarotoLedgerGenerator) RenderLedger(_ context.Context, r ports.LedgerReport) ([]byte, error) {
	if r.History == nil {
		return nil, fmt.Errorf("pdf: historial vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de movimientos", true).
		WithAuthor("Farmadist", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r.History.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(r.History.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el rango seleccionado.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(r.History.Movements)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r.History.Page, r.GeneratedAt))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r ports.LedgerReport) core.Row {
	item := nonEmpty(r.InventoryItemID, "Todos los ítems")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("FARMADIST", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Historial de movimientos de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Ítem: "+item, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Desde: "+formatDate(r.DateFrom), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Hasta: "+formatDate(r.DateTo), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s dto.LedgerSummary) core.Row {
	cell := func(label string, value int64) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(formatUnits(value), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		cell("Movimientos", int64(s.TotalMovements)),
		cell("Saldo apertura", s.OpeningBalance),
		cell("Entradas", s.TotalInbound),
		cell("Salidas", s.TotalOutbound),
		cell("Ajuste neto", s.NetAdjustment),
		cell("Saldo final", s.FinalBalance),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Dirección", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Cambio", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// tableDetailRows una fila por movimiento, en el mismo orden de la página (más reciente primero).
func tableDetailRows(entries []dto.LedgerEntryResponse) []core.Row {
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		change := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if e.BalanceChange < 0 {
			change.Color = colorRed
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(e.CreatedAt.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.MovementType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.Direction, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(formatUnits(e.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(signed(e.BalanceChange), change)),
			col.New(2).Add(text.New(formatUnits(e.RunningBalance), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func footerRow(p dto.PageMeta, generatedAt time.Time) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Página %d de %d (%d movimientos)  |  Generado %s",
			p.Page, max(p.TotalPages, 1), p.Total, generatedAt.Format(dateLayout)),
			props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func signed(n int64) string {
	if n > 0 {
		return "+" + formatUnits(n)
	}
	return formatUnits(n)
}

// formatUnits inserta puntos de miles. Ej: 1000000 → "1.000.000", -2500 → "-2.500".
func formatUnits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
