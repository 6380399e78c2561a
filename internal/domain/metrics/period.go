// Package metrics implementa el motor de métricas derivadas del log de
// transacciones: resolución de períodos a intervalos concretos,
// reconstrucción de niveles de stock por replay, agregación de tendencias
// por bucket y detección de stock bajo. Todo son reducciones puras sobre
// slices ya cargados; el paquete no toca la base de datos.
package metrics

import (
	"fmt"
	"strconv"
	"time"
)

// Period es un token del conjunto cerrado de períodos del dashboard.
// Los valores fuera del conjunto solo pueden originarse en un error de
// programación: la capa HTTP valida con ParsePeriod antes de entrar aquí.
type Period string

const (
	PeriodToday         Period = "today"
	PeriodThisWeek      Period = "this-week"      // ventana móvil de 7 días
	PeriodThisMonth     Period = "this-month"     // ventana móvil de 30 días
	PeriodPreviousMonth Period = "previous-month" // mes calendario anterior completo
	PeriodLast3Months   Period = "last-3-months"
	PeriodLast6Months   Period = "last-6-months"
	PeriodThisYear      Period = "this-year"
)

// Granularity es el tamaño de bucket con el que se agrupan las tendencias
// de un período. La correspondencia Period→Granularity es una tabla
// explícita, no comparaciones de strings dispersas.
type Granularity int

const (
	GranularityHour       Granularity = iota // "09:00"
	GranularityWeekday                       // "Mon"
	GranularityDayOfMonth                    // "15"
	GranularityShortDate                     // "Jan 15"
)

var granularityByPeriod = map[Period]Granularity{
	PeriodToday:         GranularityHour,
	PeriodThisWeek:      GranularityWeekday,
	PeriodThisMonth:     GranularityDayOfMonth,
	PeriodPreviousMonth: GranularityDayOfMonth,
	PeriodLast3Months:   GranularityShortDate,
	PeriodLast6Months:   GranularityShortDate,
	PeriodThisYear:      GranularityShortDate,
}

// ParsePeriod valida un token recibido en la frontera HTTP. Es la única
// vía de entrada para strings externos; a partir de aquí el tipo Period
// se asume dentro del conjunto cerrado.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := granularityByPeriod[p]; !ok {
		return "", fmt.Errorf("período desconocido: %q", s)
	}
	return p, nil
}

// Range resuelve el período a un intervalo semiabierto [start, end) relativo
// a now. Para todos los tokens end es now, salvo previous-month, que cubre
// el mes calendario anterior completo.
//
// Un Period fuera del conjunto cerrado provoca panic: el llamador rompió el
// contrato (error de programación, no condición recuperable).
func (p Period) Range(now time.Time) (start, end time.Time) {
	switch p {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now
	case PeriodThisWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodThisMonth:
		return now.AddDate(0, 0, -30), now
	case PeriodLast3Months:
		return now.AddDate(0, 0, -90), now
	case PeriodLast6Months:
		return now.AddDate(0, 0, -180), now
	case PeriodThisYear:
		return now.AddDate(0, 0, -365), now
	case PeriodPreviousMonth:
		firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfCurrent.AddDate(0, -1, 0), firstOfCurrent
	}
	panic(fmt.Sprintf("metrics: período fuera del conjunto cerrado: %q", string(p)))
}

// Granularity devuelve el tamaño de bucket del período. Igual que Range,
// provoca panic ante un Period fuera del conjunto cerrado.
func (p Period) Granularity() Granularity {
	g, ok := granularityByPeriod[p]
	if !ok {
		panic(fmt.Sprintf("metrics: período fuera del conjunto cerrado: %q", string(p)))
	}
	return g
}

// BucketKey deriva la etiqueta del bucket al que pertenece un instante.
// Las etiquetas no ordenan cronológicamente como strings (los nombres de
// día de semana, por ejemplo); para ordenar se usa BucketTime.
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case GranularityHour:
		return fmt.Sprintf("%02d:00", t.Hour())
	case GranularityWeekday:
		return t.Format("Mon")
	case GranularityDayOfMonth:
		return strconv.Itoa(t.Day())
	case GranularityShortDate:
		return t.Format("Jan 2")
	}
	panic(fmt.Sprintf("metrics: granularidad desconocida: %d", int(g)))
}

// BucketTime trunca un instante al inicio de su bucket. Es el valor que
// acompaña a cada etiqueta para que el consumidor pueda ordenar los buckets
// cronológicamente.
func (g Granularity) BucketTime(t time.Time) time.Time {
	if g == GranularityHour {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
