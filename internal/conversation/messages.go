package conversation

// User-facing copy. Messages stay generic and actionable; internal error text
// never reaches the user.
const (
	msgWelcome = "Hi! I am your job search assistant.\n" +
		"To get started, send me your resume as a PDF file. " +
		"You can type /cancel at any time to end our conversation."

	msgWelcomeBack = "Welcome back, %s! I still have your profile for \"%s\"."

	msgChooseAction = "What would you like to do?"

	msgAnalyzing = "Resume received! Analyzing it now..."

	msgAnalysisDone = "Analysis complete! Identified target role: %s.\n" +
		"Let's finish your registration."

	msgAskName     = "What is your first name?"
	msgAskSurname  = "Great, %s! And your last name?"
	msgAskPhone    = "Now, please share your phone number (type /skip to leave it out)."
	msgPhoneSaved  = "Phone number saved."
	msgPhoneSkip   = "Ok, skipping the phone number."
	msgAskLocation = "Where should I look for openings? (e.g. Sao Paulo, Remote)"

	msgSearching = "Searching %s openings in %s. This can take a moment..."

	msgResultsIntro = "Here is what I found for you:"
	msgNoResults    = "I could not find any openings for those criteria. " +
		"Try a different location or send an updated resume."
	msgAllSeen = "I found openings, but I have already shown you all of them. " +
		"Try again later or broaden the search."
	msgSearchDone = "Search finished. Send another resume or /start whenever you want a new search!"

	msgCancelled = "All right, conversation closed. Ping me whenever you need!"

	msgUnreadableDocument = "I could not read the text in that file. Please try a different PDF."
	msgAnalysisFailed     = "The resume analysis failed. Please try again in a moment."
	msgMissingProfile     = "Something went wrong, I could not find your profile. Please start over by sending your resume."
	msgGenericFailure     = "Something unexpected went wrong. Please try again."

	msgInvalidPhone = "That phone number does not look valid. " +
		"Use a format like +55 (11) 99999-8888, or type /skip."

	msgEmptyAnswer = "I did not catch that, please type it again."
	msgSendResume  = "Please send me your resume as a PDF file to continue."
)
