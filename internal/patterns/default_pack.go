package patterns

// defaultFamilySpecs is the built-in pattern pack, used when no pack file is
// configured. Regexes are compiled case-insensitively in multiline mode;
// phrases become word-bounded regexes.
var defaultFamilySpecs = []struct {
	name    string
	exprs   []string
	phrases []string
}{
	{
		name: FamilyNonAviationGoods,
		exprs: []string{
			`office\s+furniture|furniture\s+(?:repair|installation)`,
			`janitorial|custodial\s+services?`,
			`food\s+service|cafeteria|dining\s+facilit`,
			`lawn\s+(?:care|maintenance)|landscaping|grounds\s+maintenance`,
			`medical\s+(?:supplies|equipment|devices)|dental\s+equipment|pharmaceutical`,
			`construction\s+of|building\s+renovation|roof(?:ing)?\s+repair|HVAC\s+(?:installation|replacement)`,
			`information\s+technology\s+services|software\s+development\s+services|help\s*desk\s+support`,
			`uniforms?\b.{0,30}\b(?:clothing|apparel)|footwear|body\s+armor`,
			`ammunition|small\s+arms\b`,
			`(?:passenger|cargo)\s+vehicles?|forklift|tractor\s+trailer`,
			`office\s+supplies|paper\s+products|toner\s+cartridge`,
		},
		phrases: []string{
			"grounds keeping services",
			"refuse collection",
		},
	},
	{
		name: FamilySecurityClearance,
		exprs: []string{
			`(?:secret|top\s+secret)\s+(?:security\s+)?clearance\s+(?:is\s+)?required`,
			`classified\s+(?:work|information|material|contract)`,
			`facility\s+(?:security\s+)?clearance\s+(?:is\s+)?required`,
			`personnel\s+security\s+clearance`,
			`SCI\b|sensitive\s+compartmented`,
		},
		phrases: []string{
			"requires a security clearance",
			"cleared personnel only",
		},
	},
	{
		name: FamilyClearancePossible,
		exprs: []string{
			`may\s+require\s+(?:a\s+)?(?:security\s+)?clearance`,
			`clearance\s+may\s+be\s+required`,
		},
	},
	{
		name: FamilySetAsideCodes,
		exprs: []string{
			`8\s*\(\s*a\s*\)\s+(?:set[-\s]?aside|sole\s+source|program)`,
			`\bWOSB\b|woman[-\s]owned\s+small\s+business`,
			`\bEDWOSB\b|economically\s+disadvantaged\s+woman[-\s]owned`,
			`\bSDVOSB\b|service[-\s]disabled\s+veteran[-\s]owned`,
			`\bVOSB\b|veteran[-\s]owned\s+small\s+business\s+set[-\s]?aside`,
			`HUBZone\s+(?:set[-\s]?aside|sole\s+source|small\s+business)`,
			`total\s+small\s+business\s+set[-\s]?aside.{0,60}8\s*\(\s*a\s*\)`,
		},
	},
	{
		name: FamilySoleSource,
		exprs: []string{
			`sole[-\s]source\s+(?:award|acquisition|procurement|basis|justification)`,
			`only\s+one\s+responsible\s+source`,
			`intends?\s+to\s+(?:award|negotiate)\s+(?:a\s+contract\s+)?(?:on\s+a\s+)?sole[-\s]source`,
			`brand\s+name\s+only`,
			`single\s+source\s+procurement`,
		},
	},
	{
		name: FamilyApprovedSourceList,
		exprs: []string{
			`approved\s+sources?\s+(?:list|only)`,
			`restricted\s+to\s+(?:the\s+)?approved\s+sources?`,
			`P/N\s+approved\s+sources?`,
			`alternate\s+(?:product|source)s?\s+will\s+not\s+be\s+(?:considered|accepted)`,
		},
		phrases: []string{
			"approved source of supply",
		},
	},
	{
		name: FamilyQPLQML,
		exprs: []string{
			`\bQPL\b|qualified\s+products?\s+list`,
			`\bQML\b|qualified\s+manufacturers?\s+list`,
			`qualification\s+(?:is\s+)?required\s+(?:prior\s+to|before)\s+award`,
		},
	},
	{
		name: FamilyTechDataUnavailable,
		exprs: []string{
			`(?:drawings?|technical\s+data)\s+(?:are|is)\s+not\s+available`,
			`government\s+does\s+not\s+(?:own|possess|have)\s+(?:the\s+)?(?:technical\s+)?data`,
			`OEM\s+proprietary|proprietary\s+(?:to\s+the\s+)?(?:OEM|manufacturer)`,
			`no\s+(?:technical\s+)?data\s+package\s+(?:is\s+)?available`,
			`data\s+rights\s+(?:are\s+)?(?:held|retained)\s+by`,
		},
	},
	{
		name: FamilyExportControl,
		exprs: []string{
			`\bITAR\b|international\s+traffic\s+in\s+arms`,
			`export\s+(?:license|control(?:led)?|restrictions?)`,
			`\bEAR\b.{0,40}export\s+administration`,
			`DDTC\s+registration`,
			`militarily\s+critical\s+technical\s+data`,
		},
	},
	{
		name: FamilyAMSCRestrictedCodes,
		exprs: []string{
			`AMSC[:\s]+(?:CODE\s+)?[BCDPRH]\b`,
			`acquisition\s+method\s+suffix\s+code[:\s]+[BCDPRH]\b`,
			`AMC[:\s]+(?:CODE\s+)?[345]\b`,
			`acquisition\s+method\s+code[:\s]+[345]\b`,
		},
	},
	{
		name: FamilySourceApprovalReq,
		exprs: []string{
			`source\s+approval\s+(?:is\s+)?required`,
			`\bSAR\b.{0,60}(?:package|submittal|required)`,
			`engineering\s+source\s+approval`,
			`offerors?\s+must\s+be\s+approved\s+sources?`,
		},
	},
	{
		name: FamilyMilitaryPlatform,
		exprs: []string{
			// Fighters and attack aircraft.
			`\bF[-\s]?(?:15|16|18|22|35)[A-Z]?\b`,
			`\bA[-\s]?10\b|\bAV[-\s]?8B?\b`,
			// Bombers.
			`\bB[-\s]?(?:1B?|2|52)[A-Z]?\b`,
			// Military transports and tiltrotors.
			`\bC[-\s]?(?:2|5|17|130)[A-Z]?\b`,
			`\b[MC]?V[-\s]?22\b`,
			// Attack and utility helicopters.
			`\bAH[-\s]?64[A-Z]?\b|\bUH[-\s]?60[A-Z]?\b|\bCH[-\s]?47[A-Z]?\b|\bH[-\s]?53[A-Z]?\b`,
			// Weapons, EW, and ordnance nouns.
			`missile\s+(?:guidance|launcher|components?)`,
			`electronic\s+warfare|radar\s+jamm(?:er|ing)|countermeasures?\s+dispens`,
			`torpedo|warhead|munitions?\b`,
			`fire\s+control\s+(?:radar|system)`,
		},
	},
	{
		name: FamilyWeaponsOrdnance,
		exprs: []string{
			`bomb\s+rack|ejection\s+seat|gun\s+(?:system|mount)`,
			`ordnance\s+(?:handling|items?|equipment)`,
			`explosive\s+(?:devices?|components?)`,
		},
	},
	{
		name: FamilyNewPartsOnly,
		exprs: []string{
			`(?:factory\s+)?new\s+(?:parts?|items?|units?|material)\s+only`,
			`surplus\s+(?:parts?\s+)?(?:is|are|will)\s+not\s+(?:be\s+)?(?:acceptable|accepted|considered)`,
			`no\s+(?:used|refurbished|reconditioned|surplus)\s+(?:parts?|items?|material)`,
			`used\s+or\s+reconditioned\s+.{0,40}not\s+acceptable`,
			`remanufactured\s+.{0,40}prohibited`,
		},
	},
	{
		name: FamilyBridgeContract,
		exprs: []string{
			`bridge\s+contract|bridge\s+action`,
			`interim\s+contract\s+action`,
		},
	},
	{
		name: FamilyIncumbentAdvantage,
		exprs: []string{
			`incumbent\s+contractor`,
			`continuation\s+of\s+(?:current|existing)\s+(?:effort|services)`,
			`follow[-\s]on\s+(?:contract|procurement)\s+to`,
		},
	},
	{
		name: FamilyFirstArticle,
		exprs: []string{
			`first\s+article\s+(?:test(?:ing)?|approval|inspection)`,
			`\bFAT\b\s+(?:is\s+)?required`,
		},
	},
	{
		name: FamilySubcontractingBan,
		exprs: []string{
			`subcontracting\s+(?:is\s+)?(?:not\s+(?:permitted|allowed|authorized)|prohibited)`,
			`no\s+subcontracting`,
			`prime\s+contractor\s+must\s+perform\s+all`,
		},
	},
	{
		name: FamilyContractVehicle,
		exprs: []string{
			`GSA\s+(?:schedule|MAS)\s+(?:holders?\s+only|required)`,
			`SeaPort(?:[-\s]?NxG)?\s+(?:holders?|task\s+order)`,
			`\bOASIS\b\s+(?:pool|holders?|task\s+order)`,
			`CIO[-\s]?SP3|SEWP\s+(?:V|contract)`,
			`(?:existing|current)\s+(?:IDIQ|GWAC)\s+holders?\s+only`,
		},
	},
	{
		name: FamilyExperimental,
		exprs: []string{
			`other\s+transaction\s+(?:agreement|authority)|\bOTA\b\s+(?:agreement|prototype)`,
			`broad\s+agency\s+announcement|\bBAA\b\s+(?:number|solicitation)`,
			`\bSBIR\b|\bSTTR\b|small\s+business\s+innovation\s+research`,
			`\bCRADA\b|cooperative\s+research\s+and\s+development\s+agreement`,
			`prototype\s+project\s+(?:under|pursuant)`,
		},
	},
	{
		name: FamilyITSystemAccess,
		exprs: []string{
			`JEDMICS\s+(?:access|account)`,
			`\bETIMS\b|electronic\s+technical\s+information\s+management`,
			`cFolders\s+(?:access|registration)`,
			`CMMC\s+(?:level\s+)?[123]|cybersecurity\s+maturity\s+model`,
		},
	},
	{
		name: FamilyJCPCertification,
		exprs: []string{
			`\bJCP\b\s+(?:certification|certified|access)`,
			`joint\s+certification\s+program`,
			`DD\s*(?:form\s*)?2345`,
		},
	},
	{
		name: FamilyAgencyCertifications,
		exprs: []string{
			`NASA\s+(?:approved|certification|quality\s+provisions)`,
			`EPA\s+(?:registration|certification)\s+required`,
			`TSA\s+(?:certification|approval)\s+required`,
			`DCMA\s+(?:approval|approved\s+(?:quality|inspection)\s+system)`,
			`NADCAP\s+(?:accreditation|certified)`,
		},
	},
	{
		name: FamilyWarrantyObligations,
		exprs: []string{
			`direct\s+depot\s+(?:support|maintenance|repair)`,
			`warranty\s+(?:administration|obligations?|support)\s+(?:is\s+)?required`,
			`contractor\s+(?:shall|will)\s+(?:provide|administer)\s+.{0,40}warranty`,
		},
	},
	{
		name: FamilyCADFormatRequired,
		exprs: []string{
			`native\s+CAD\s+(?:format|files?|models?)`,
			`CATIA\s+(?:V[456]\s+)?(?:files?|models?|format)`,
			`SolidWorks\s+(?:files?|models?)`,
			`(?:Creo|Pro/?E(?:ngineer)?)\s+(?:files?|models?)`,
			`Siemens\s+NX\s+(?:files?|models?)`,
		},
	},

	// Override and positive-signal families.
	{
		name: FamilyAMSCOpenCodes,
		exprs: []string{
			`AMSC[:\s]+(?:CODE\s+)?[ZGA]\b`,
			`acquisition\s+method\s+suffix\s+code[:\s]+[ZGA]\b`,
			`AMC[:\s]+(?:CODE\s+)?[12]\b`,
			`\bAMC\s*/?\s*AMSC[:\s]+(?:1G|1R|2G)\b`,
			`full\s+and\s+open\s+competition.{0,60}AMSC`,
		},
	},
	{
		name: FamilyCommercialItems,
		exprs: []string{
			`commercial\s+items?\b`,
			`FAR\s+(?:part\s+)?12\b`,
			`commercial\s+(?:off[-\s]the[-\s]shelf|product|equivalent)`,
			`\bCOTS\b`,
		},
	},
	{
		name: FamilyFAA8130,
		exprs: []string{
			`FAA\s*(?:form\s*)?8130(?:[-\s]?3)?`,
			`airworthiness\s+(?:approval|certificate|tag)`,
			`8130[-\s]?3\s+(?:tag|form|certification)`,
		},
	},
	{
		name: FamilyTDPPositive,
		exprs: []string{
			`(?:complete|full)\s+technical\s+data\s+package\s+(?:is\s+)?(?:available|provided)`,
			`government\s+(?:owns|possesses|holds)\s+(?:the\s+)?(?:technical\s+)?data\s+rights`,
			`drawings?\s+(?:are|will\s+be)\s+(?:available|provided|furnished)`,
			`TDP\s+(?:is\s+)?available`,
		},
	},
	{
		name: FamilyRefurbishedAllowed,
		exprs: []string{
			`refurbished\s+(?:parts?\s+)?(?:is|are)?\s*acceptable`,
			`(?:used|surplus|reconditioned)\s+(?:parts?\s+|material\s+)?(?:is|are|will\s+be)\s+(?:acceptable|considered|accepted)`,
			`any\s+condition\s+(?:is\s+)?acceptable`,
			`overhauled\s+(?:units?|parts?)\s+(?:is|are)\s+acceptable`,
		},
	},
	{
		name: FamilyCivilianPlatform,
		exprs: []string{
			`Boeing\s+7[0-9]7`,
			`Airbus\s+A3[0-9]{2}`,
			`\bCessna\b|\bGulfstream\b|\bBeechcraft\b|\bLearjet\b|\bBombardier\b`,
			`King\s+Air|Citation\s+(?:V|X|Excel|Sovereign|Latitude)`,
			`\bL[-\s]?100\b|\bDC[-\s]?(?:9|10)\b|\bMD[-\s]?(?:80|90)\b`,
		},
	},
	{
		name: FamilyAviationPlatform,
		exprs: []string{
			`aircraft\s+(?:parts?|components?|spares?|hardware)`,
			`airframe\s+(?:structural\s+)?(?:parts?|components?)`,
			`avionics|aerospace\s+grade`,
			`NSN\s+(?:15|16|17|28|29)[0-9]{2}`,
			`FSC\s+(?:15|16|17|28|29)[0-9]{2}`,
			`aviation\s+(?:spares?|supply|parts?)`,
		},
	},
}

// Default returns the built-in pattern pack.
func Default() *Pack {
	pack := NewPack()
	for _, spec := range defaultFamilySpecs {
		family, _ := NewFamily(spec.name, spec.exprs, spec.phrases)
		pack.Add(family)
	}
	return pack
}
