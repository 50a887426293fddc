package locale

// The first entry is the fallback.
var builtin = []struct {
	id    string
	names Names
}{
	{"en", Names{
		Months:        [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		ShortMonths:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		ShortWeekdays: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
		MonthYear:     "%[1]s %[2]d",
	}},
	{"ko", Names{
		Months:        [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
		ShortMonths:   [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
		Weekdays:      [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"},
		ShortWeekdays: [7]string{"일", "월", "화", "수", "목", "금", "토"},
		MonthYear:     "%[2]d년 %[3]d월",
	}},
	{"es", Names{
		Months:        [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		ShortMonths:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
		Weekdays:      [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		ShortWeekdays: [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
		MonthYear:     "%[1]s de %[2]d",
	}},
	{"fr", Names{
		Months:        [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		ShortMonths:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		Weekdays:      [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		ShortWeekdays: [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
		MonthYear:     "%[1]s %[2]d",
	}},
	{"de", Names{
		Months:        [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		ShortMonths:   [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		Weekdays:      [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		ShortWeekdays: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		MonthYear:     "%[1]s %[2]d",
	}},
	{"ja", Names{
		Months:        [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		ShortMonths:   [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		Weekdays:      [7]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"},
		ShortWeekdays: [7]string{"日", "月", "火", "水", "木", "金", "土"},
		MonthYear:     "%[2]d年%[3]d月",
	}},
}
