package ediwire

// ExtractedData is implemented by every per-type extraction result. AsMap
// returns the legacy nested-map shape that downstream connectors consume;
// every field documented for the type is present, zero-valued when the
// source segment is missing.
type ExtractedData interface {
	AsMap() map[string]any
}

// Party is a trading party from an X12 N1 segment.
type Party struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
}

// LineItem is one X12 line item (PO1 or IT1).
type LineItem struct {
	LineNumber string `json:"line_number"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	ProductID  string `json:"product_id"`
}

// EdifactParty is a trading party from a NAD segment.
type EdifactParty struct {
	Qualifier string `json:"qualifier"`
	ID        string `json:"id"`
	Name      string `json:"name"`
}

// EdifactLineItem is one EDIFACT line item (LIN).
type EdifactLineItem struct {
	LineNumber string `json:"line_number"`
	ProductID  string `json:"product_id"`
}

// Order850 is the data lifted from an X12 850 purchase order.
type Order850 struct {
	PONumber  string     `json:"po_number"`
	PODate    string     `json:"po_date"`
	POType    string     `json:"po_type"`
	Parties   []Party    `json:"parties"`
	LineItems []LineItem `json:"line_items"`
}

func (d *Order850) AsMap() map[string]any {
	return map[string]any{
		"po_number":  d.PONumber,
		"po_date":    d.PODate,
		"po_type":    d.POType,
		"parties":    partyMaps(d.Parties),
		"line_items": lineItemMaps(d.LineItems),
	}
}

// Ack855 is the data lifted from an X12 855 purchase order acknowledgment.
type Ack855 struct {
	PONumber string `json:"po_number"`
	AckDate  string `json:"ack_date"`
	AckType  string `json:"ack_type"`
}

func (d *Ack855) AsMap() map[string]any {
	return map[string]any{
		"po_number": d.PONumber,
		"ack_date":  d.AckDate,
		"ack_type":  d.AckType,
	}
}

// Invoice810 is the data lifted from an X12 810 invoice.
type Invoice810 struct {
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   string     `json:"invoice_date"`
	PONumber      string     `json:"po_number"`
	LineItems     []LineItem `json:"line_items"`
}

func (d *Invoice810) AsMap() map[string]any {
	return map[string]any{
		"invoice_number": d.InvoiceNumber,
		"invoice_date":   d.InvoiceDate,
		"po_number":      d.PONumber,
		"line_items":     lineItemMaps(d.LineItems),
	}
}

// ShipNotice856 is the data lifted from an X12 856 ship notice.
type ShipNotice856 struct {
	ShipmentID string `json:"shipment_id"`
	ShipDate   string `json:"ship_date"`
}

func (d *ShipNotice856) AsMap() map[string]any {
	return map[string]any{
		"shipment_id": d.ShipmentID,
		"ship_date":   d.ShipDate,
	}
}

// Orders is the data lifted from an EDIFACT ORDERS message.
type Orders struct {
	OrderNumber string            `json:"order_number"`
	OrderType   string            `json:"order_type"`
	OrderDate   string            `json:"order_date"`
	Dates       map[string]string `json:"dates"`
	Parties     []EdifactParty    `json:"parties"`
	LineItems   []EdifactLineItem `json:"line_items"`
}

func (d *Orders) AsMap() map[string]any {
	return map[string]any{
		"order_number": d.OrderNumber,
		"order_type":   d.OrderType,
		"order_date":   d.OrderDate,
		"dates":        d.Dates,
		"parties":      edifactPartyMaps(d.Parties),
		"line_items":   edifactLineItemMaps(d.LineItems),
	}
}

// Desadv is the data lifted from an EDIFACT DESADV despatch advice.
type Desadv struct {
	DespatchNumber string            `json:"despatch_number"`
	DespatchType   string            `json:"despatch_type"`
	Dates          map[string]string `json:"dates"`
}

func (d *Desadv) AsMap() map[string]any {
	return map[string]any{
		"despatch_number": d.DespatchNumber,
		"despatch_type":   d.DespatchType,
		"dates":           d.Dates,
	}
}

// Invoic is the data lifted from an EDIFACT INVOIC invoice.
type Invoic struct {
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceType   string            `json:"invoice_type"`
	InvoiceDate   string            `json:"invoice_date"`
	Dates         map[string]string `json:"dates"`
	LineItems     []EdifactLineItem `json:"line_items"`
}

func (d *Invoic) AsMap() map[string]any {
	return map[string]any{
		"invoice_number": d.InvoiceNumber,
		"invoice_type":   d.InvoiceType,
		"invoice_date":   d.InvoiceDate,
		"dates":          d.Dates,
		"line_items":     edifactLineItemMaps(d.LineItems),
	}
}

// TransactionData wraps one X12 transaction's extracted fields together
// with its envelope identifiers. Data is nil for unsupported transaction
// types; AsMap then yields an empty "data" mapping.
type TransactionData struct {
	TransactionType string        `json:"transaction_type"`
	ControlNumber   string        `json:"control_number"`
	Data            ExtractedData `json:"data"`
}

// AsMap returns the contract shape consumed by downstream connectors:
// {"transaction_type", "control_number", "data": {...}}.
func (t *TransactionData) AsMap() map[string]any {
	data := map[string]any{}
	if t.Data != nil {
		data = t.Data.AsMap()
	}
	return map[string]any{
		"transaction_type": t.TransactionType,
		"control_number":   t.ControlNumber,
		"data":             data,
	}
}

// MessageData is the EDIFACT counterpart of TransactionData.
type MessageData struct {
	MessageType    string        `json:"message_type"`
	MessageVersion string        `json:"message_version"`
	Data           ExtractedData `json:"data"`
}

func (m *MessageData) AsMap() map[string]any {
	data := map[string]any{}
	if m.Data != nil {
		data = m.Data.AsMap()
	}
	return map[string]any{
		"message_type":    m.MessageType,
		"message_version": m.MessageVersion,
		"data":            data,
	}
}

// ExtractTransactionData lifts the domain fields for the transaction's
// declared type. Missing source segments yield zero-valued fields; the
// function never fails.
func ExtractTransactionData(txn *Transaction) *TransactionData {
	td := &TransactionData{
		TransactionType: txn.Type,
		ControlNumber:   txn.ControlNumber,
	}
	switch txn.Type {
	case "850":
		td.Data = extractOrder850(txn)
	case "855":
		td.Data = extractAck855(txn)
	case "810":
		td.Data = extractInvoice810(txn)
	case "856":
		td.Data = extractShipNotice856(txn)
	}
	return td
}

// ExtractMessageData lifts the domain fields for the message's declared
// type. Missing source segments yield zero-valued fields; the function
// never fails.
func ExtractMessageData(msg *Message) *MessageData {
	md := &MessageData{
		MessageType:    msg.Type,
		MessageVersion: msg.Version,
	}
	switch msg.Type {
	case "ORDERS":
		md.Data = extractOrders(msg)
	case "DESADV":
		md.Data = extractDesadv(msg)
	case "INVOIC":
		md.Data = extractInvoic(msg)
	}
	return md
}

func extractOrder850(txn *Transaction) *Order850 {
	d := &Order850{
		Parties:   []Party{},
		LineItems: []LineItem{},
	}
	if beg := txn.GetSegment("BEG"); beg != nil {
		d.PONumber = beg.Element(3)
		d.PODate = beg.Element(5)
		d.POType = beg.Element(2)
	}
	for _, n1 := range txn.GetSegments("N1") {
		d.Parties = append(d.Parties, Party{
			EntityID: n1.Element(1),
			Name:     n1.Element(2),
		})
	}
	for _, po1 := range txn.GetSegments("PO1") {
		d.LineItems = append(d.LineItems, LineItem{
			LineNumber: po1.Element(1),
			Quantity:   po1.Element(2),
			UnitPrice:  po1.Element(4),
			ProductID:  po1.Element(7),
		})
	}
	return d
}

func extractAck855(txn *Transaction) *Ack855 {
	d := &Ack855{}
	if bak := txn.GetSegment("BAK"); bak != nil {
		d.PONumber = bak.Element(3)
		d.AckDate = bak.Element(4)
		d.AckType = bak.Element(2)
	}
	return d
}

func extractInvoice810(txn *Transaction) *Invoice810 {
	d := &Invoice810{LineItems: []LineItem{}}
	if big := txn.GetSegment("BIG"); big != nil {
		d.InvoiceNumber = big.Element(2)
		d.InvoiceDate = big.Element(3)
		d.PONumber = big.Element(4)
	}
	for _, it1 := range txn.GetSegments("IT1") {
		d.LineItems = append(d.LineItems, LineItem{
			LineNumber: it1.Element(1),
			Quantity:   it1.Element(2),
			UnitPrice:  it1.Element(4),
			ProductID:  it1.Element(7),
		})
	}
	return d
}

func extractShipNotice856(txn *Transaction) *ShipNotice856 {
	d := &ShipNotice856{}
	if bsn := txn.GetSegment("BSN"); bsn != nil {
		d.ShipmentID = bsn.Element(2)
		d.ShipDate = bsn.Element(3)
	}
	return d
}

func extractOrders(msg *Message) *Orders {
	d := &Orders{
		Dates:     collectDates(msg),
		Parties:   []EdifactParty{},
		LineItems: collectLineItems(msg),
	}
	if bgm := msg.GetSegment("BGM"); bgm != nil {
		d.OrderNumber = bgm.Component(2, 0)
		d.OrderType = bgm.Component(1, 0)
		d.OrderDate = bgm.Component(4, 0)
	}
	for _, nad := range msg.GetSegments("NAD") {
		d.Parties = append(d.Parties, EdifactParty{
			Qualifier: nad.Component(1, 0),
			ID:        nad.Component(2, 0),
			Name:      nad.Component(3, 0),
		})
	}
	return d
}

func extractDesadv(msg *Message) *Desadv {
	d := &Desadv{Dates: collectDates(msg)}
	if bgm := msg.GetSegment("BGM"); bgm != nil {
		d.DespatchNumber = bgm.Component(2, 0)
		d.DespatchType = bgm.Component(1, 0)
	}
	return d
}

func extractInvoic(msg *Message) *Invoic {
	d := &Invoic{
		Dates:     collectDates(msg),
		LineItems: collectLineItems(msg),
	}
	if bgm := msg.GetSegment("BGM"); bgm != nil {
		d.InvoiceNumber = bgm.Component(2, 0)
		d.InvoiceType = bgm.Component(1, 0)
		d.InvoiceDate = bgm.Component(4, 0)
	}
	return d
}

// collectDates gathers DTM segments into a qualifier-to-value mapping.
func collectDates(msg *Message) map[string]string {
	dates := make(map[string]string)
	for _, dtm := range msg.GetSegments("DTM") {
		dates[dtm.Component(1, 0)] = dtm.Component(1, 1)
	}
	return dates
}

func collectLineItems(msg *Message) []EdifactLineItem {
	items := []EdifactLineItem{}
	for _, lin := range msg.GetSegments("LIN") {
		items = append(items, EdifactLineItem{
			LineNumber: lin.Component(1, 0),
			ProductID:  lin.Component(3, 0),
		})
	}
	return items
}

func partyMaps(parties []Party) []map[string]any {
	out := make([]map[string]any, 0, len(parties))
	for _, p := range parties {
		out = append(out, map[string]any{
			"entity_id": p.EntityID,
			"name":      p.Name,
		})
	}
	return out
}

func lineItemMaps(items []LineItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, li := range items {
		out = append(out, map[string]any{
			"line_number": li.LineNumber,
			"quantity":    li.Quantity,
			"unit_price":  li.UnitPrice,
			"product_id":  li.ProductID,
		})
	}
	return out
}

func edifactPartyMaps(parties []EdifactParty) []map[string]any {
	out := make([]map[string]any, 0, len(parties))
	for _, p := range parties {
		out = append(out, map[string]any{
			"qualifier": p.Qualifier,
			"id":        p.ID,
			"name":      p.Name,
		})
	}
	return out
}

func edifactLineItemMaps(items []EdifactLineItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, li := range items {
		out = append(out, map[string]any{
			"line_number": li.LineNumber,
			"product_id":  li.ProductID,
		})
	}
	return out
}
