package taxonomy

// Default returns the built-in immigration and criminal law taxonomy. A YAML
// file supplied via configuration replaces it entirely.
func Default() *Registry {
	r, err := New(Config{
		Entries:         append(defaultCategories(), defaultDocTypes()...),
		Examples:        defaultExamples(),
		ValidatorSubset: defaultValidatorDocTypes(),
		Mismatches:      defaultMismatches(),
		NoMatchCategory: "Immigration Appeals & Motions",
		NoMatchDocType:  "Misc. Reference Material",
	})
	if err != nil {
		// The built-in tables are static; a construction failure is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return r
}

func defaultCategories() []Entry {
	return []Entry{
		{
			Name:                 "Asylum & Refugee",
			Kind:                 KindCategory,
			Description:          "Immigration cases of individuals seeking protection due to past persecution or fear of persecution (e.g. asylum applications, refugee status claims).",
			Keywords:             []string{"asylum", "refugee", "persecution", "fear", "protection", "withholding", "removal", "torture", "cat"},
			ExampleDocumentTypes: []string{"asylum application", "refugee petition", "country condition evidence", "persecution evidence"},
		},
		{
			Name:                 "Family-Sponsored Immigration",
			Kind:                 KindCategory,
			Description:          "Immigration cases based on family relationships (e.g. visa petitions for spouses, children, parents of U.S. citizens or residents).",
			Keywords:             []string{"family", "spouse", "marriage", "i-130", "i-485", "petition", "relative", "child", "parent"},
			ExampleDocumentTypes: []string{"marriage certificate", "birth certificate", "family petition", "adjustment of status"},
		},
		{
			Name:                 "Employment-Based Immigration",
			Kind:                 KindCategory,
			Description:          "Immigration cases for employment-based visas and permanent residence through work sponsorship.",
			Keywords:             []string{"employment", "work", "job", "labor", "h1b", "eb-1", "eb-2", "eb-3", "perm", "sponsor"},
			ExampleDocumentTypes: []string{"labor certification", "employment petition", "work authorization", "job offer"},
		},
		{
			Name:                 "Non-Immigrant Visas",
			Kind:                 KindCategory,
			Description:          "Temporary visa applications for tourists, students, workers, and other temporary visitors.",
			Keywords:             []string{"tourist", "student", "visitor", "f-1", "b-1", "b-2", "temporary", "visa", "nonimmigrant"},
			ExampleDocumentTypes: []string{"visa application", "student records", "travel documents", "temporary status"},
		},
		{
			Name:                 "Naturalization & Citizenship",
			Kind:                 KindCategory,
			Description:          "Cases about obtaining U.S. citizenship or proof of citizenship (e.g. naturalization applications, citizenship certificates).",
			Keywords:             []string{"citizenship", "naturalization", "n-400", "oath", "ceremony", "citizen", "passport application"},
			ExampleDocumentTypes: []string{"citizenship application", "naturalization certificate", "citizenship test", "passport"},
		},
		{
			Name:                 "Removal & Deportation Defense",
			Kind:                 KindCategory,
			Description:          "Cases of individuals in deportation/removal proceedings, fighting to remain in the U.S. (immigration court defense).",
			Keywords:             []string{"removal", "deportation", "nta", "notice to appear", "immigration court", "eoir", "hearing"},
			ExampleDocumentTypes: []string{"notice to appear", "hearing notice", "motion to terminate", "cancellation"},
		},
		{
			Name:                 "Immigration Detention & Bonds",
			Kind:                 KindCategory,
			Description:          "Matters involving ICE detention and bond hearings to secure release from immigration custody.",
			Keywords:             []string{"detention", "bond", "ice", "custody", "release", "parole", "detained"},
			ExampleDocumentTypes: []string{"bond motion", "detention order", "parole request", "custody records"},
		},
		{
			Name:                 "Waivers of Inadmissibility",
			Kind:                 KindCategory,
			Description:          "Cases focused on waivers/exceptions that forgive immigration violations or criminal grounds to allow relief.",
			Keywords:             []string{"waiver", "inadmissibility", "i-601", "i-212", "forgiveness", "hardship", "extreme"},
			ExampleDocumentTypes: []string{"waiver application", "hardship evidence", "medical waiver", "criminal waiver"},
		},
		{
			Name:                 "Immigration Appeals & Motions",
			Kind:                 KindCategory,
			Description:          "Appeals or motions to reopen/reconsider in immigration matters (BIA appeals, motions to reopen cases, etc.).",
			Keywords:             []string{"appeal", "motion", "reopen", "reconsider", "bia", "federal court", "petition for review"},
			ExampleDocumentTypes: []string{"notice of appeal", "motion to reopen", "brief", "petition for review"},
		},
		{
			Name:                 "Humanitarian & Special Programs",
			Kind:                 KindCategory,
			Description:          "Immigration cases under humanitarian programs (e.g. VAWA, U visas, T visas, TPS, DACA, humanitarian parole, SIJS).",
			Keywords:             []string{"vawa", "u visa", "t visa", "tps", "daca", "humanitarian", "sijs", "violence", "trafficking"},
			ExampleDocumentTypes: []string{"u visa petition", "vawa petition", "tps application", "trafficking evidence"},
		},
		{
			Name:                 "ICE Enforcement & Compliance",
			Kind:                 KindCategory,
			Description:          "Issues related to ICE check-ins, orders of supervision, compliance with enforcement for individuals not detained.",
			Keywords:             []string{"ice", "supervision", "check-in", "compliance", "monitoring", "enforcement"},
			ExampleDocumentTypes: []string{"supervision order", "check-in notice", "compliance report", "monitoring agreement"},
		},
		{
			Name:                 "Criminal Defense (Pretrial & Trial)",
			Kind:                 KindCategory,
			Description:          "Criminal cases defending individuals charged with crimes, from investigation through trial and verdict.",
			Keywords:             []string{"criminal", "charges", "indictment", "trial", "defense", "plea", "guilty", "innocent"},
			ExampleDocumentTypes: []string{"indictment", "complaint", "plea agreement", "trial transcript", "discovery"},
		},
		{
			Name:                 "Criminal Appeals",
			Kind:                 KindCategory,
			Description:          "Cases appealing criminal convictions or sentences to higher courts.",
			Keywords:             []string{"appeal", "conviction", "sentence", "appellate", "review", "overturn"},
			ExampleDocumentTypes: []string{"notice of appeal", "appellate brief", "court decision", "sentencing memo"},
		},
		{
			Name:                 "Criminal Post-Conviction Relief",
			Kind:                 KindCategory,
			Description:          "Motions or petitions attacking a finalized criminal conviction/sentence (e.g. habeas corpus, motions to vacate).",
			Keywords:             []string{"habeas", "corpus", "post-conviction", "vacate", "ineffective", "assistance", "counsel"},
			ExampleDocumentTypes: []string{"habeas petition", "motion to vacate", "ineffective assistance claim"},
		},
		{
			Name:                 "Parole & Probation Proceedings",
			Kind:                 KindCategory,
			Description:          "Matters involving parole board hearings for release from prison, or court hearings on probation violations.",
			Keywords:             []string{"parole", "probation", "violation", "hearing", "release", "supervision", "conditions"},
			ExampleDocumentTypes: []string{"parole hearing", "probation report", "violation notice", "supervision agreement"},
		},
	}
}

func defaultDocTypes() []Entry {
	return []Entry{
		{
			Name:        "USCIS Receipt Notice",
			Kind:        KindDocumentType,
			Description: "USCIS notice confirming receipt of an application or petition (Form I-797C Notice of Action).",
			Keywords:    []string{"receipt notice", "case receipt", "uscis receipt", "i-797c", "notice of action"},
		},
		{
			Name:        "USCIS Approval Notice",
			Kind:        KindDocumentType,
			Description: "USCIS notice indicating an application or petition was approved (often Form I-797 notice of action).",
			Keywords:    []string{"approval notice", "approved", "petition approved", "i-797"},
		},
		{
			Name:        "USCIS Appointment Notice",
			Kind:        KindDocumentType,
			Description: "USCIS notice scheduling biometrics or an interview (contains date/time for fingerprinting or interview).",
			Keywords:    []string{"appointment notice", "biometrics", "interview", "fingerprinting"},
		},
		{
			Name:        "USCIS Request for Evidence (RFE)",
			Kind:        KindDocumentType,
			Description: "USCIS letter requesting additional evidence for a pending application.",
			Keywords:    []string{"request for evidence", "rfe", "additional evidence", "further evidence"},
		},
		{
			Name:        "USCIS Intent to Deny/Revoke",
			Kind:        KindDocumentType,
			Description: "USCIS notice of intent to deny an application or revoke a prior approval (often abbreviated NOID or NOIR).",
			Keywords:    []string{"intent to deny", "intent to revoke", "noid", "noir"},
		},
		{
			Name:        "USCIS Denial Notice",
			Kind:        KindDocumentType,
			Description: "USCIS decision letter denying an application or petition.",
			Keywords:    []string{"denial", "denied", "decision"},
		},
		{
			Name:        "Notice to Appear (NTA)",
			Kind:        KindDocumentType,
			Description: "Charging document initiating immigration court removal proceedings (lists allegations and hearing info).",
			Keywords:    []string{"notice to appear", "nta", "removal proceeding", "immigration court", "removability"},
		},
		{
			Name:        "Immigration Court Hearing Notice",
			Kind:        KindDocumentType,
			Description: "Notice of scheduled immigration court hearing (Master or Individual hearing date).",
			Keywords:    []string{"hearing notice", "master hearing", "individual hearing", "immigration court"},
		},
		{
			Name:        "Immigration Judge Decision/Order",
			Kind:        KindDocumentType,
			Description: "Written decision or order from an Immigration Judge (granting or denying relief, removal order, etc.).",
			Keywords:    []string{"immigration judge", "order of the immigration judge", "relief", "removal order"},
		},
		{
			Name:        "BIA/AAO Appeal Decision",
			Kind:        KindDocumentType,
			Description: "Decision from the Board of Immigration Appeals or USCIS Administrative Appeals Office on an appeal.",
			Keywords:    []string{"board of immigration appeals", "bia", "aao", "appeal decision"},
		},
		{
			Name:        "ICE Supervision Report Notice",
			Kind:        KindDocumentType,
			Description: "ICE Order of Supervision or notice to report for ICE check-ins (conditions for release from detention).",
			Keywords:    []string{"order of supervision", "check-in", "ice", "report"},
		},
		{
			Name:        "Parole Board Notice/Decision",
			Kind:        KindDocumentType,
			Description: "Correspondence scheduling a parole hearing or announcing a parole board's decision in a criminal or immigration case.",
			Keywords:    []string{"parole board", "parole hearing", "parole decision"},
		},
		{
			Name:        "Motion (Court Filing)",
			Kind:        KindDocumentType,
			Description: "A legal motion filed in court (requesting a court order on a specific issue).",
			Keywords:    []string{"motion to", "motion for", "comes now", "respectfully", "court", "honorable"},
		},
		{
			Name:        "Legal Brief/Memorandum",
			Kind:        KindDocumentType,
			Description: "A document outlining legal arguments, filed in support of a motion or on appeal.",
			Keywords:    []string{"brief", "memorandum", "argument", "authorities", "statement of facts"},
		},
		{
			Name:        "Notice of Appeal",
			Kind:        KindDocumentType,
			Description: "Filing that initiates an appeal of a court or agency decision.",
			Keywords:    []string{"notice of appeal", "appeal"},
		},
		{
			Name:        "Subpoena",
			Kind:        KindDocumentType,
			Description: "Legal document ordering someone to appear in court or produce evidence.",
			Keywords:    []string{"subpoena", "commanded to appear", "produce"},
		},
		{
			Name:        "Notice of Appearance",
			Kind:        KindDocumentType,
			Description: "Form or letter entering an attorney's appearance in a case (e.g. Form G-28 for immigration, attorney notice in court).",
			Keywords:    []string{"notice of appearance", "g-28", "entry of appearance", "attorney"},
		},
		{
			Name:        "Official Form/Application",
			Kind:        KindDocumentType,
			Description: "Completed official form for an application or petition (e.g. visa application form, immigration petition form).",
			Keywords:    []string{"form", "application for", "petition for", "part 1", "part 2"},
		},
		{
			Name:        "ID or Civil Document",
			Kind:        KindDocumentType,
			Description: "Personal identification or civil documents (passport, birth/marriage certificate, ID card) submitted as evidence.",
			Keywords:    []string{"birth certificate", "passport", "marriage certificate", "driver license", "divorce decree", "death certificate"},
		},
		{
			Name:        "Financial Document",
			Kind:        KindDocumentType,
			Description: "Financial records (tax returns, pay stubs, bank statements, affidavits of support) submitted as evidence.",
			Keywords:    []string{"tax return", "bank statement", "pay stub", "income", "affidavit of support", "w-2"},
		},
		{
			Name:        "Medical Record",
			Kind:        KindDocumentType,
			Description: "Medical reports or records submitted as evidence (doctor letters, hospital records, lab results).",
			Keywords:    []string{"medical record", "medical report", "diagnosis", "treatment", "hospital"},
		},
		{
			Name:        "Psychological Evaluation",
			Kind:        KindDocumentType,
			Description: "Mental health evaluation or report by a psychologist/psychiatrist submitted in the case.",
			Keywords:    []string{"psychological evaluation", "mental health", "psychologist", "psychiatrist"},
		},
		{
			Name:        "Country Conditions Info",
			Kind:        KindDocumentType,
			Description: "Reports or articles about conditions in a country (human rights reports, news articles) used as evidence.",
			Keywords:    []string{"country conditions", "human rights report", "country report"},
		},
		{
			Name:        "Police/Incident Report",
			Kind:        KindDocumentType,
			Description: "Law enforcement report documenting an incident or crime (used as evidence for criminal or immigration cases).",
			Keywords:    []string{"police report", "incident report", "officer", "report number"},
		},
		{
			Name:        "Court Record (Disposition)",
			Kind:        KindDocumentType,
			Description: "Official court record of a case's outcome (e.g. conviction certificate, docket sheet, sentencing record).",
			Keywords:    []string{"disposition", "docket", "conviction", "sentencing record"},
		},
		{
			Name:        "Background Check/Rap Sheet",
			Kind:        KindDocumentType,
			Description: "Criminal history report (FBI or state rap sheet listing arrests/convictions).",
			Keywords:    []string{"rap sheet", "criminal history", "background check", "fbi"},
		},
		{
			Name:        "Photographs/Media",
			Kind:        KindDocumentType,
			Description: "Photographs or audio/video media files submitted as evidence.",
			Keywords:    []string{"photograph", "photo", "video", "media"},
		},
		{
			Name:        "Communications Evidence",
			Kind:        KindDocumentType,
			Description: "Printouts of texts, emails, social media posts or similar communications used as evidence.",
			Keywords:    []string{"text message", "email", "social media", "screenshot"},
		},
		{
			Name:        "Support/Reference Letter",
			Kind:        KindDocumentType,
			Description: "Letter of support or character reference from a third party (not notarized, typically informal).",
			Keywords:    []string{"letter of support", "character reference", "good moral character"},
		},
		{
			Name:        "Witness Affidavit/Declaration",
			Kind:        KindDocumentType,
			Description: "Sworn statement by a witness or third party (notarized affidavit or signed declaration under penalty of perjury).",
			Keywords:    []string{"affidavit", "declaration", "sworn statement", "under penalty of perjury", "duly sworn", "hereby declare"},
		},
		{
			Name:        "Affidavit",
			Kind:        KindDocumentType,
			Description: "A sworn written statement made under oath or affirmation, used as evidence in court or agency proceedings.",
			Keywords:    []string{"affidavit", "sworn", "oath", "notary"},
		},
		{
			Name:        "Bond Packet",
			Kind:        KindDocumentType,
			Description: "Compiled set of documents submitted for an immigration bond hearing (cover letter, exhibits like support letters, etc.).",
			Keywords:    []string{"bond packet", "bond hearing", "exhibits"},
		},
		{
			Name:        "FOIA Request",
			Kind:        KindDocumentType,
			Description: "Letter or form requesting records under the Freedom of Information Act.",
			Keywords:    []string{"foia", "freedom of information", "records request"},
		},
		{
			Name:        "FOIA Records Response",
			Kind:        KindDocumentType,
			Description: "Documents received from a FOIA request (agency's response and released records).",
			Keywords:    []string{"foia response", "released records"},
		},
		{
			Name:        "Legal Research Memo",
			Kind:        KindDocumentType,
			Description: "Internal memo analyzing legal issues or case law (attorney work product).",
			Keywords:    []string{"research memo", "case law", "analysis", "issue", "conclusion"},
		},
		{
			Name:        "Case Strategy Memo",
			Kind:        KindDocumentType,
			Description: "Internal document outlining legal strategy or case plan (attorney work product).",
			Keywords:    []string{"strategy", "case plan", "work product"},
		},
		{
			Name:        "Client Timeline",
			Kind:        KindDocumentType,
			Description: "Chronology of events prepared for the case (attorney or client prepared timeline of facts).",
			Keywords:    []string{"timeline", "chronology"},
		},
		{
			Name:        "Interview/Meeting Notes",
			Kind:        KindDocumentType,
			Description: "Attorney's notes from client interviews, witness interviews, or meetings.",
			Keywords:    []string{"interview notes", "meeting notes"},
		},
		{
			Name:        "Evidence Index",
			Kind:        KindDocumentType,
			Description: "List or index of exhibits/evidence prepared for the case.",
			Keywords:    []string{"evidence index", "exhibit list", "index of exhibits"},
		},
		{
			Name:        "Draft (Unfiled) Document",
			Kind:        KindDocumentType,
			Description: "Draft version of a legal document (e.g. draft affidavit, draft motion) not yet signed or filed.",
			Keywords:    []string{"draft"},
		},
		{
			Name:        "Unsigned Declaration",
			Kind:        KindDocumentType,
			Description: "An unsigned sworn statement prepared for someone to sign (e.g. draft client declaration awaiting signature).",
			Keywords:    []string{"unsigned", "declaration", "awaiting signature"},
		},
		{
			Name:        "Attorney-Client Correspondence",
			Kind:        KindDocumentType,
			Description: "Letters or emails between the lawyer and client regarding the case.",
			Keywords:    []string{"dear", "client", "your case", "sincerely"},
		},
		{
			Name:        "General Correspondence",
			Kind:        KindDocumentType,
			Description: "Other case-related correspondence (letters to/from agencies, opposing counsel, cover letters, etc.).",
			Keywords:    []string{"letter", "correspondence", "cover letter", "regarding", "enclosed"},
		},
		{
			Name:        "Misc. Reference Material",
			Kind:        KindDocumentType,
			Description: "Any other documents in the file for reference (e.g. copies of laws, practice advisories, articles in the file).",
			Keywords:    []string{"reference", "advisory", "article"},
		},
		{
			Name:        "Criminal Complaint/Indictment",
			Kind:        KindDocumentType,
			Description: "Formal criminal charging document (complaint filed by prosecutor or indictment from a grand jury).",
			Keywords:    []string{"criminal complaint", "indictment", "grand jury", "charges", "count one"},
		},
		{
			Name:        "Plea Agreement",
			Kind:        KindDocumentType,
			Description: "Written agreement in a criminal case where defendant pleads guilty under agreed terms.",
			Keywords:    []string{"plea agreement", "plead guilty", "plea of guilty"},
		},
		{
			Name:        "Court Order/Judgment",
			Kind:        KindDocumentType,
			Description: "Official court order or judgment (e.g. sentencing order, final judgment, court's written order on a motion).",
			Keywords:    []string{"order", "judgment", "decree", "it is ordered", "so ordered"},
		},
		{
			Name:        "Sentencing Memo",
			Kind:        KindDocumentType,
			Description: "Memorandum to the court arguing for a particular sentence (usually by defense, before sentencing in a criminal case).",
			Keywords:    []string{"sentencing memorandum", "sentence", "mitigation"},
		},
	}
}

func defaultExamples() []Example {
	return []Example{
		{
			Text:        "USCIS Receipt Notice I-797C for Form I-130 Petition for Alien Relative filed for spouse",
			Category:    "Family-Sponsored Immigration",
			DocType:     "USCIS Receipt Notice",
			Description: "Receipt notice for family petition",
		},
		{
			Text:        "Notice to Appear charging removability under section 237(a)(1)(A) for overstaying authorized period",
			Category:    "Removal & Deportation Defense",
			DocType:     "Notice to Appear (NTA)",
			Description: "Immigration court removal proceedings charging document",
		},
		{
			Text:        "Application for Asylum and for Withholding of Removal based on political persecution",
			Category:    "Asylum & Refugee",
			DocType:     "Official Form/Application",
			Description: "Asylum application form",
		},
		{
			Text:        "Criminal Complaint charging defendant with aggravated assault in the first degree",
			Category:    "Criminal Defense (Pretrial & Trial)",
			DocType:     "Criminal Complaint/Indictment",
			Description: "Formal criminal charging document",
		},
		{
			Text:        "Motion for Bond Redetermination in Immigration Court proceedings",
			Category:    "Immigration Detention & Bonds",
			DocType:     "Motion (Court Filing)",
			Description: "Motion requesting bond hearing in immigration court",
		},
		{
			Text:        "I-601 Application for Waiver of Grounds of Inadmissibility based on extreme hardship",
			Category:    "Waivers of Inadmissibility",
			DocType:     "Official Form/Application",
			Description: "Waiver application for immigration violations",
		},
		{
			Text:        "U-Visa Petition for victims of qualifying criminal activity who suffered mental trauma",
			Category:    "Humanitarian & Special Programs",
			DocType:     "Official Form/Application",
			Description: "U visa petition for crime victims",
		},
		{
			Text:        "Birth Certificate from Mexico with certified English translation for immigration purposes",
			Category:    "Family-Sponsored Immigration",
			DocType:     "ID or Civil Document",
			Description: "Supporting civil document for family petition",
		},
	}
}

func defaultValidatorDocTypes() []string {
	return []string{
		"Witness Affidavit/Declaration",
		"Official Form/Application",
		"Medical Record",
		"Financial Document",
		"ID or Civil Document",
		"USCIS Receipt Notice",
		"USCIS Approval Notice",
		"General Correspondence",
		"Motion (Court Filing)",
		"Court Order/Judgment",
		"Criminal Complaint/Indictment",
	}
}

func defaultMismatches() []Mismatch {
	return []Mismatch{
		{
			DocType:  "Notice to Appear (NTA)",
			Category: "Criminal Defense (Pretrial & Trial)",
			Note:     "Notices to Appear initiate removal proceedings and belong to Removal & Deportation Defense",
		},
		{
			DocType:  "Criminal Complaint/Indictment",
			Category: "Family-Sponsored Immigration",
			Note:     "Criminal charging documents typically belong to a criminal defense category",
		},
		{
			DocType:  "Plea Agreement",
			Category: "Asylum & Refugee",
			Note:     "Plea agreements typically belong to Criminal Defense (Pretrial & Trial)",
		},
		{
			DocType:  "Parole Board Notice/Decision",
			Category: "Family-Sponsored Immigration",
			Note:     "Parole board documents typically belong to Parole & Probation Proceedings",
		},
	}
}
