package enums

var recordTypeLabels = map[RecordType]string{
	RecordTypeReturn:   "Возврат",
	RecordTypeSale:     "Продажа",
	RecordTypePurchase: "Закупка",
	RecordTypeTransfer: "Перемещение",
}

var recordStatusLabels = map[RecordStatus]string{
	RecordStatusPending:    "Ожидание",
	RecordStatusProcessing: "В обработке",
	RecordStatusCompleted:  "Завершено",
	RecordStatusCancelled:  "Отменено",
}

var priorityLabels = map[Priority]string{
	PriorityLow:    "Низкий",
	PriorityNormal: "Обычный",
	PriorityHigh:   "Высокий",
	PriorityUrgent: "Срочный",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusUnpaid:        "Не оплачено",
	PaymentStatusPartiallyPaid: "Частично оплачено",
	PaymentStatusPaid:          "Оплачено",
	PaymentStatusRefunded:      "Возврат средств",
}

var marketplaceLabels = map[Marketplace]string{
	MarketplaceOzon:        "OZON",
	MarketplaceWildberries: "Wildberries",
	MarketplaceYandex:      "Яндекс Маркет",
	MarketplaceAliExpress:  "AliExpress",
}

// Label returns the display label, or the raw value when unknown.
func (r RecordType) Label() string { return labelOr(recordTypeLabels[r], string(r)) }

// Label returns the display label; unknown statuses render as pending.
func (r RecordStatus) Label() string {
	if label, ok := recordStatusLabels[r]; ok {
		return label
	}
	return recordStatusLabels[RecordStatusPending]
}

// Label returns the display label; unknown priorities render as normal.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[PriorityNormal]
}

// Label returns the display label, or the raw value when unknown.
func (p PaymentStatus) Label() string { return labelOr(paymentStatusLabels[p], string(p)) }

// Label returns the display label, or the raw value when unknown.
func (m Marketplace) Label() string { return labelOr(marketplaceLabels[m], string(m)) }

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
