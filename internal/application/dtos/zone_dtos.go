package dtos

// ZoneDTO - элемент справочника зон.
type ZoneDTO struct {
	IDZona         int64   `json:"idZona"`
	Nazvanie       string  `json:"nazvanie"`
	NazvanieEs     *string `json:"nazvanieEs"`
	PolSpecifichen bool    `json:"polSpecifichen"`
}
