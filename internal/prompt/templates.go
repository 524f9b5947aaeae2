package prompt

const (
	// personaTemplate opens every prompt. %s is the city.
	personaTemplate = "You are a social media trends expert in %s.\n\n"

	// groundedTaskHeader introduces the search-derived candidate lists.
	groundedTaskHeader = "1. Use the following trending places found by live web search:\n"

	// ungroundedTaskTemplate asks the model to pick places itself. %s is the city.
	ungroundedTaskTemplate = "1. Choose places that are currently trending on social media in %s:\n" +
		"   three different cafes, three different restaurants and three different parks.\n" +
		"   Use real, well-known places only.\n"

	// reportInstruction describes the narrative field.
	reportInstruction = "2. Write 3 friendly, short reports in **Arabic** (3-5 sentences each) combining **one cafe, one restaurant, and one park** per set.\n"

	// outputContract fixes the JSON array shape the parser expects.
	outputContract = `3. Only return JSON in this exact format:

[
  {
    "cafe": "اسم الكافيه",
    "restaurant": "اسم المطعم",
    "park": "اسم الحديقة",
    "report": "تقرير باللغة العربية عن الثلاث أماكن"
  },
  ...
]

Return exactly 3 items.
Each item must use exactly the keys "cafe", "restaurant", "park", "report" in that order.
The "report" value must be written in Arabic.
Output JSON only.
DO NOT include any text before or after the JSON block.
DO NOT wrap the JSON in markdown code fences.
`
)
