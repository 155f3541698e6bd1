package equipment_availability

// AvailabilityRequest запрос проверки одного окна оборудования
type AvailabilityRequest struct {
	Equipment        string // Тип оборудования ("laser", "reformer", ...)
	Date             string // Дата сессии ("2025-03-10")
	StartTime        string // Начало сессии ("10:00")
	StartMinute      int    // Начало окна относительно начала сессии
	EndMinute        int    // Конец окна относительно начала сессии
	ExcludeSessionID string // Сессия, чьи окна не учитываются (редактируемая)
}

// AvailabilityResponse результат проверки окна
type AvailabilityResponse struct {
	Equipment   string
	Date        string
	StartTime   string
	StartMinute int
	EndMinute   int
	Available   bool
}

// OfferableRequest запрос свободных окон для всех типов оборудования
type OfferableRequest struct {
	Date             string
	StartTime        string
	DurationMinutes  int
	ExcludeSessionID string
}

// Slot окно оборудования в минутах от начала сессии
type Slot struct {
	StartMinute int
	EndMinute   int
}

// EquipmentSlots свободные окна одного типа оборудования
type EquipmentSlots struct {
	Equipment string
	Slots     []Slot
}

// OfferableResponse свободные окна в порядке типов оборудования
type OfferableResponse struct {
	Date            string
	StartTime       string
	DurationMinutes int
	Equipment       []EquipmentSlots
}
