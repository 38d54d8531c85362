package dto

// CountryCount - страна и количество объектов в ней.
// Объект, лежащий в нескольких странах, учитывается в каждой из них.
type CountryCount struct {
	Country string `json:"country"`
	Sites   int    `json:"sites"`
}

// CountryListResponse - информационный список стран
type CountryListResponse struct {
	Countries []CountryCount `json:"countries"`
	Total     int            `json:"total"`
}
