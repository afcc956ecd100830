package main

var (
	AboutMe = `I'm a full-stack developer and automation specialist. Most of my work lives where
	the browser ends and the boring manual process begins: web systems, process automation,
	and AI chatbots that actually answer people. I like taking a workflow someone does by
	hand every month and turning it into a button, and I care about the details that make
	software feel finished.`

	ProjectFinancialAssistant = `A WhatsApp financial assistant chatbot that records expenses,
	categorizes spending and answers financial questions in the conversation itself, built
	with Node.js and the OpenAI API.`

	ProjectRobotParis = `Robô Paris, a banking automation that reconciles statements and runs
	repetitive operations across multiple banks unattended, built with Python and Selenium.`

	ProjectRouteOptimizer = `A route optimization system that computes shorter delivery routes
	and cuts fuel cost and travel time, with interactive visualizations for dispatchers.`

	ProjectTaxAutomation = `Automations for FGTS Digital and DCTFWeb that generate payment
	slips and file tax declarations automatically, built with Python, Pandas and PyAutoGUI.`
)
