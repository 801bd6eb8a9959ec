package knowledge

import "github.com/kailas-cloud/virtualta/internal/domain"

// Topic keys of the compiled-in TDS knowledge base.
const (
	KeyModelSelection    = "gpt_model_selection"
	KeyGA4Scoring        = "ga4_scoring"
	KeyDockerPodman      = "docker_podman"
	KeyFutureExams       = "future_exams"
	KeyPythonEnvironment = "python_environment"
	KeyDataSources       = "data_sources"
	KeySubmissions       = "submissions"
)

const (
	discourseGA5Q8     = "https://discourse.onlinedegree.iitm.ac.in/t/ga5-question-8-clarification/155939"
	discourseGA4Thread = "https://discourse.onlinedegree.iitm.ac.in/t/ga4-data-sourcing-discussion-thread-tds-jan-2025/165959"
)

// Default returns the TDS (Jan-Apr 2025) knowledge base, keyed by topic with explicit keyword lists.
func Default() *Store {
	return MustNew(
		mustEntry(KeyModelSelection,
			"You must use `gpt-3.5-turbo-0125`, even if the AI Proxy only supports `gpt-4o-mini`. "+
				"Use the OpenAI API directly for this question.",
			[]string{"gpt-4o-mini", "gpt-3.5-turbo", "gpt3.5", "ai proxy", "openai api", "model"},
			[]domain.Link{
				{
					URL:  discourseGA5Q8 + "/4",
					Text: "Use the model that's mentioned in the question.",
				},
				{
					URL: discourseGA5Q8 + "/3",
					Text: "My understanding is that you just have to use a tokenizer, similar to what Prof. Anand used, " +
						"to get the number of tokens and multiply that by the given rate.",
				},
			},
		),
		mustEntry(KeyGA4Scoring,
			"If a student scores 10/10 on GA4 plus a bonus point, the dashboard would show \"110\" indicating 110% completion. "+
				"This represents the full marks (100%) plus the additional bonus point (10%) earned.",
			[]string{"ga4", "bonus", "dashboard", "10/10", "scoring", "110"},
			[]domain.Link{
				{URL: discourseGA4Thread + "/388", Text: "GA4 bonus scoring explanation and dashboard display format"},
				{URL: discourseGA4Thread, Text: "Complete GA4 discussion thread with scoring details"},
			},
		),
		mustEntry(KeyDockerPodman,
			"While Docker is acceptable and you can use it since you're already familiar with it, "+
				"the course recommends using Podman for its rootless containers and better security features. "+
				"The syntax is very similar to Docker, so the transition should be smooth. "+
				"However, Docker is perfectly fine for completing assignments.",
			[]string{"docker", "podman", "container", "containerization"},
			[]domain.Link{
				{URL: "https://tds.s-anand.net/#/docker", Text: "TDS course Docker and containerization documentation"},
			},
		),
		mustEntry(KeyFutureExams,
			"I don't have information about the TDS Sep 2025 end-term exam schedule yet, "+
				"as this information is not available in my current knowledge base. "+
				"Please check the official course announcements on the IIT Madras portal "+
				"or contact the course coordinators for the most up-to-date exam schedule.",
			[]string{"sep 2025", "september 2025", "exam", "end-term", "schedule"},
			nil,
		),
		mustEntry(KeyPythonEnvironment,
			"For TDS assignments, you should use Python 3.8 or higher. "+
				"The course provides Jupyter notebooks and recommends using Anaconda or Miniconda for package management. "+
				"Make sure you have pandas, numpy, matplotlib, and seaborn installed.",
			[]string{"python", "jupyter", "anaconda", "miniconda", "environment", "setup"},
			[]domain.Link{
				{URL: "https://tds.s-anand.net/#/setup", Text: "TDS course environment setup guide"},
			},
		),
		mustEntry(KeyDataSources,
			"For GA4 and other assignments, you can use various data sources including CSV files, APIs, databases, "+
				"and web scraping. Make sure to follow ethical guidelines and respect rate limits when accessing external APIs.",
			[]string{"data source", "api", "csv", "database", "web scraping", "ga4"},
			[]domain.Link{
				{URL: discourseGA4Thread, Text: "GA4 data sourcing discussion"},
			},
		),
		mustEntry(KeySubmissions,
			"All assignments should be submitted through the course portal by the specified deadline. "+
				"Late submissions may incur penalties. Make sure to follow the submission format specified in each assignment.",
			[]string{"submission", "deadline", "late", "penalty", "format"},
			[]domain.Link{
				{URL: "https://tds.s-anand.net/#/assignments", Text: "Assignment submission guidelines"},
			},
		),
	)
}

func mustEntry(key, answer string, keywords []string, links []domain.Link) Entry {
	e, err := NewEntry(key, answer, keywords, links)
	if err != nil {
		panic(err)
	}
	return e
}
