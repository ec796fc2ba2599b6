package store

import (
	"bytes"
	"encoding/csv"
	"strings"

	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// TransactionCSVRow is one row of a CSV snapshot.
// Payments are written as "method:amount" pairs separated by ';', e.g. "cash:20;bank:10".
type TransactionCSVRow struct {
	ID            string `csv:"id"`
	Type          string `csv:"type"`
	Category      string `csv:"category"`
	Subcategory   string `csv:"subcategory"`
	Account       string `csv:"account"`
	Amount        string `csv:"amount"`
	PaymentStatus string `csv:"paymentStatus"`
	TotalPaid     string `csv:"totalPaid"`
	Payments      string `csv:"payments"`
	CreatedAt     string `csv:"createdAt"`
}

func (l *Loader) decodeCSV(data []byte) (*LoadResult, error) {
	res := &LoadResult{}
	if len(bytes.TrimSpace(data)) == 0 {
		return res, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = l.delimiter
	reader.TrimLeadingSpace = true

	var rows []TransactionCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, &parsererror.ParseError{Parser: "csv", Field: "document", Value: snippet(data), Index: -1, Err: err}
	}

	for i, row := range rows {
		tx, err := row.toTransaction(i)
		if err != nil {
			res.Skipped = append(res.Skipped, err)
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}

func (row TransactionCSVRow) toTransaction(index int) (models.Transaction, *parsererror.ParseError) {
	tx := models.Transaction{
		ID:            strings.TrimSpace(row.ID),
		Type:          models.TransactionType(strings.TrimSpace(row.Type)),
		Category:      strings.TrimSpace(row.Category),
		Subcategory:   strings.TrimSpace(row.Subcategory),
		Account:       strings.TrimSpace(row.Account),
		PaymentStatus: models.PaymentStatus(strings.TrimSpace(row.PaymentStatus)),
		CreatedAt:     strings.TrimSpace(row.CreatedAt),
		Payments:      ParsePaymentsColumn(row.Payments),
	}

	amount, err := models.ParseMoney(strings.TrimSpace(row.Amount))
	if err != nil {
		return tx, &parsererror.ParseError{Parser: "csv", Field: "amount", Value: row.Amount, Index: index, Err: err}
	}
	tx.Amount = amount

	totalPaid, err := models.ParseMoney(strings.TrimSpace(row.TotalPaid))
	if err != nil {
		return tx, &parsererror.ParseError{Parser: "csv", Field: "totalPaid", Value: row.TotalPaid, Index: index, Err: err}
	}
	tx.TotalPaid = totalPaid

	return tx, nil
}

// ParsePaymentsColumn decodes the payments column of a CSV row.
// An empty column is an absent list. Entries that are not "method:amount" are dropped
// and counted; the remaining entries still settle the transaction.
func ParsePaymentsColumn(value string) models.PaymentList {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.PaymentList{}
	}

	list := models.NewPaymentList()
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		method, amountStr, ok := strings.Cut(entry, ":")
		if !ok {
			list.Dropped++
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			list.Dropped++
			continue
		}
		list.Items = append(list.Items, models.Payment{Method: strings.TrimSpace(method), Amount: &amount})
	}
	return list
}
