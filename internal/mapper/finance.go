package mapper

import "aplus-academy/internal/models"

func RevenueFromRow(row models.RevenueRow) models.RevenueRecord {
	return models.RevenueRecord{
		ID:     row.ID,
		Source: row.Source,
		Amount: ParseAmount(row.Amount.String),
		Month:  row.Month,
		Note:   row.Note.String,
	}
}

func RevenueToRow(r models.RevenueRecord) models.RevenueRow {
	return models.RevenueRow{
		ID:     r.ID,
		Source: r.Source,
		Amount: amount(r.Amount),
		Month:  r.Month,
		Note:   optional(r.Note),
	}
}

func ExpenseFromRow(row models.ExpenseRow) models.ExpenseRecord {
	typ := models.ExpenseType(row.Type.String)
	if typ == "" {
		typ = models.ExpenseVariable
	}

	return models.ExpenseRecord{
		ID:          row.ID,
		Category:    row.Category,
		Amount:      ParseAmount(row.Amount.String),
		Month:       row.Month,
		Description: row.Description.String,
		Type:        typ,
	}
}

func ExpenseToRow(e models.ExpenseRecord) models.ExpenseRow {
	return models.ExpenseRow{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      amount(e.Amount),
		Month:       e.Month,
		Description: optional(e.Description),
		Type:        text(string(e.Type)),
	}
}
