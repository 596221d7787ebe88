package portfolio

import (
	"fmt"

	"github.com/google/uuid"
)

// Seed returns a complete demo portfolio with all five section types filled
// in for every supported locale. Used by the init command so a fresh project
// can be exported immediately.
func Seed() *Portfolio {
	newID := func(prefix string) string {
		return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
	}
	return &Portfolio{
		ID:             newID("project"),
		Name:           "My 3D Portfolio",
		DefaultLocale:  LocaleEN,
		EnabledLocales: []Locale{LocaleEN, LocaleUA},
		Theme:          Theme{PrimaryColor: "#7c3aed", Mode: "dark"},
		Sections: []Section{
			{
				ID:      newID("hero"),
				Type:    SectionHero,
				Effects: Effects{Parallax: 0.5, Blur: true, Has3D: true},
				Data: &HeroData{
					Headline: LocalizedString{
						LocaleEN: "Jane Doe - Creative Developer",
						LocaleUA: "Джейн Доу - Креативний розробник",
						LocaleRU: "Джейн Доу - Креативный разработчик",
						LocalePL: "Jane Doe - Kreatywny programista",
					},
					Subheadline: LocalizedString{
						LocaleEN: "Crafting immersive digital experiences with code and creativity.",
						LocaleUA: "Створення захоплюючих цифрових вражень за допомогою коду та творчості.",
						LocaleRU: "Создание захватывающих цифровых впечатлений с помощью кода и творчества.",
						LocalePL: "Tworzenie wciągających doświadczeń cyfrowych za pomocą kodu i kreatywności.",
					},
					CTAButton: LocalizedString{
						LocaleEN: "Get In Touch",
						LocaleUA: "Зв'язатися",
						LocaleRU: "Связаться",
						LocalePL: "Skontaktuj się",
					},
				},
			},
			{
				ID:      newID("about"),
				Type:    SectionAbout,
				Effects: Effects{Parallax: 0.2},
				Data: &AboutData{
					Title: LocalizedString{
						LocaleEN: "About Me",
						LocaleUA: "Про мене",
						LocaleRU: "Обо мне",
						LocalePL: "O mnie",
					},
					Paragraph: LocalizedString{
						LocaleEN: "I am a passionate developer with a love for building beautiful and functional web applications.",
						LocaleUA: "Я - захоплений розробник, який любить створювати красиві та функціональні веб-додатки.",
						LocaleRU: "Я - увлеченный разработчик, который любит создавать красивые и функциональные веб-приложения.",
						LocalePL: "Jestem pasjonatem programowania, który uwielbia tworzyć piękne i funkcjonalne aplikacje internetowe.",
					},
					Avatar: &MediaRef{
						URL: "https://picsum.photos/600/800",
						Alt: "Portrait of Jane Doe",
					},
					Tags:   []string{"React", "TypeScript", "UI/UX"},
					Layout: "default",
				},
			},
			{
				ID:      newID("skills"),
				Type:    SectionSkills,
				Effects: Effects{Parallax: 0.1},
				Data: &SkillsData{
					Title: LocalizedString{
						LocaleEN: "My Skills",
						LocaleUA: "Мої навички",
						LocaleRU: "Мои навыки",
						LocalePL: "Moje umiejętności",
					},
					Skills: []Skill{
						{ID: "s1", Name: "React", Level: 95},
						{ID: "s2", Name: "TypeScript", Level: 90},
						{ID: "s3", Name: "Node.js", Level: 85},
						{ID: "s4", Name: "Three.js", Level: 75},
						{ID: "s5", Name: "Tailwind CSS", Level: 98},
						{ID: "s6", Name: "Figma", Level: 80},
					},
				},
			},
			{
				ID:      newID("projects"),
				Type:    SectionProjects,
				Effects: Effects{Parallax: 0.3},
				Data: &ProjectsData{
					Title: LocalizedString{
						LocaleEN: "Featured Projects",
						LocaleUA: "Вибрані проекти",
						LocaleRU: "Избранные проекты",
						LocalePL: "Wyróżnione projekty",
					},
					Projects: []Project{
						{
							ID: "p1",
							Title: LocalizedString{
								LocaleEN: "Project Alpha", LocaleUA: "Проект Альфа",
								LocaleRU: "Проект Альфа", LocalePL: "Projekt Alfa",
							},
							Description: LocalizedString{
								LocaleEN: "A cutting-edge e-commerce platform.",
								LocaleUA: "Сучасна платформа електронної комерції.",
								LocaleRU: "Современная платформа электронной коммерции.",
								LocalePL: "Nowoczesna platforma e-commerce.",
							},
							Image: &MediaRef{URL: "https://picsum.photos/800/600?random=1", Alt: "Project Alpha screenshot"},
							Tags:  []string{"React", "Node.js", "MongoDB"},
							Link:  "#",
						},
						{
							ID: "p2",
							Title: LocalizedString{
								LocaleEN: "Project Beta", LocaleUA: "Проект Бета",
								LocaleRU: "Проект Бета", LocalePL: "Projekt Beta",
							},
							Description: LocalizedString{
								LocaleEN: "Interactive data visualization tool.",
								LocaleUA: "Інтерактивний інструмент візуалізації даних.",
								LocaleRU: "Интерактивный инструмент визуализации данных.",
								LocalePL: "Interaktywne narzędzie do wizualizacji danych.",
							},
							Image: &MediaRef{URL: "https://picsum.photos/800/600?random=2", Alt: "Project Beta screenshot"},
							Tags:  []string{"D3.js", "TypeScript"},
							Link:  "#",
						},
					},
				},
			},
			{
				ID:      newID("contact"),
				Type:    SectionContact,
				Effects: Effects{Parallax: 0.1, Blur: true},
				Data: &ContactData{
					Title: LocalizedString{
						LocaleEN: "Contact Me",
						LocaleUA: "Зв'яжіться зі мною",
						LocaleRU: "Свяжитесь со мной",
						LocalePL: "Skontaktuj się ze mną",
					},
					Email: "hello@janedoe.dev",
					SocialLinks: []SocialLink{
						{ID: "sl1", Platform: PlatformGitHub, URL: "https://github.com/janedoe"},
						{ID: "sl2", Platform: PlatformLinkedIn, URL: "https://linkedin.com/in/janedoe"},
						{ID: "sl3", Platform: PlatformTwitter, URL: "https://twitter.com/janedoe"},
					},
				},
			},
		},
	}
}
