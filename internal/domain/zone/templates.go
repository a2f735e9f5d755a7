package zone

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
)

const (
	nationalParkVisitors = 30000
	otherPFZVisitors     = 15000
)

var numbers = message.NewPrinter(language.English)

// template is the facility concept attached to a zone.
type template struct {
	recommendedType string
	capacity        string
	investment      string
	payback         string
	legalStatus     string
	facilities      []string
}

func competitorsPoint(n int) string {
	return fmt.Sprintf("🏗️ Конкурентів у радіусі 5 км: %d", n)
}

func nearPFZTemplate(object string, national bool) (template, int) {
	if national {
		return template{
			recommendedType: "Еко-готель з глемпінгом",
			capacity:        "60-100 місць",
			investment:      "$500K-1M",
			payback:         "5-7 років",
			legalStatus:     fmt.Sprintf("Землі поза межами ПЗФ, потрібне погодження з адміністрацією «%s»", object),
			facilities: []string{
				"Екологічний готель на 40-60 місць",
				"Інформаційний центр для відвідувачів",
				"Еко-стежки та оглядові майданчики",
				"Прокат велосипедів і туристичного спорядження",
				"Кафе з локальною кухнею",
			},
		}, nationalParkVisitors
	}
	return template{
		recommendedType: "Еко-садиба",
		capacity:        "30-60 місць",
		investment:      "$300K-600K",
		payback:         "4-6 років",
		legalStatus:     fmt.Sprintf("Землі поза межами ПЗФ, потрібне погодження з адміністрацією «%s»", object),
		facilities: []string{
			"Екологічний готель на 20-30 місць",
			"Інформаційний центр з картами маршрутів",
			"Еко-стежки",
			"Альтанки та місця для пікніків",
		},
	}, otherPFZVisitors
}

func nearPFZReasoning(object string, distance float64, visitors, competitors int) Reasoning {
	return Reasoning{
		Point1: fmt.Sprintf("🌲 %.0f км від «%s»", distance, object),
		Point2: numbers.Sprintf("📊 Потенціал: %d відвідувачів на рік", visitors),
		Point3: competitorsPoint(competitors),
	}
}

func roadsideTemplate(international bool) (template, string) {
	if international {
		return template{
			recommendedType: "Мотель з придорожнім комплексом",
			capacity:        "40-60 місць",
			investment:      "$300K-700K",
			payback:         "3-5 років",
			legalStatus:     "Землі вздовж траси, потрібна зміна цільового призначення та погодження з Укравтодором",
			facilities: []string{
				"Мотель на 20-30 номерів",
				"Охоронювана стоянка для авто та вантажівок",
				"Ресторан швидкого обслуговування",
				"Зарядна станція для електромобілів",
				"Зона відпочинку для водіїв",
			},
		}, "5000+"
	}
	return template{
		recommendedType: "Придорожній мотель",
		capacity:        "20-40 місць",
		investment:      "$150K-400K",
		payback:         "3-4 роки",
		legalStatus:     "Землі вздовж траси, потрібна зміна цільового призначення",
		facilities: []string{
			"Мотель на 10-15 номерів",
			"Стоянка для авто",
			"Кафе",
			"Зона відпочинку для водіїв",
		},
	}, "3000+"
}

func roadsideReasoning(road dataset.Road, traffic string, competitors int) Reasoning {
	roadType := road.Type
	if roadType == "" {
		roadType = "регіональна"
	}
	return Reasoning{
		Point1: fmt.Sprintf("🚗 Траса %s (%s)", road.Name, roadType),
		Point2: fmt.Sprintf("📊 Трафік: %s авто/день", traffic),
		Point3: competitorsPoint(competitors),
	}
}

func firePreventionTemplate(size int) template {
	t := template{
		recommendedType: "Облаштований кемпінг з контролем вогню",
		legalStatus:     "Землі лісового фонду, потрібне погодження з лісгоспом",
		facilities: []string{
			"Облаштовані місця з безпечними вогнищами",
			"Пункт пожежної безпеки з інвентарем",
			"Джерело води для пожежогасіння",
			"Кемпінг з контрольованим доступом",
		},
	}
	switch {
	case size >= 10:
		t.capacity, t.investment, t.payback = "80-120 місць", "$300K-600K", "4-6 років"
	case size >= 5:
		t.capacity, t.investment, t.payback = "50-80 місць", "$200K-400K", "3-5 років"
	default:
		t.capacity, t.investment, t.payback = "30-50 місць", "$100K-250K", "3-4 роки"
	}
	if size >= 5 {
		t.facilities = append(t.facilities, "Спостережна вежа для раннього виявлення пожеж")
	}
	if size >= 10 {
		t.facilities = append(t.facilities, "Пост лісової охорони")
	}
	return t
}

func firePreventionReasoning(size, competitors int) Reasoning {
	return Reasoning{
		Point1: fmt.Sprintf("🔥 %d пожеж через людський фактор у радіусі 10 км", size),
		Point2: "🌲 Облаштований відпочинок замість стихійних вогнищ знижує ризик пожеж",
		Point3: competitorsPoint(competitors),
	}
}

func (t template) apply(z *Zone) {
	z.RecommendedType = t.recommendedType
	z.RecommendedCapacity = t.capacity
	z.Investment = t.investment
	z.Payback = t.payback
	z.LegalStatus = t.legalStatus
	z.RecommendedFacilities = append([]string(nil), t.facilities...)
}

//Personal.AI order the ending
