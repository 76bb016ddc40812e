package platform

import "github.com/sosillc/bidgate/internal/model"

// militaryPlatforms maps military airframe designators to verdicts. GO
// entries are commercial derivatives whose parts overlap the civilian fleet;
// CONDITIONAL entries have civilian variants or mixed part commonality;
// NO-GO entries are pure military platforms.
var militaryPlatforms = map[string]mapping{
	// Commercial derivatives, GO.
	"KC-46":  {model.PlatformGo, "767"},
	"KC-767": {model.PlatformGo, "767"},
	"P-8":    {model.PlatformGo, "737"},
	"P-8A":   {model.PlatformGo, "737"},
	"C-40":   {model.PlatformGo, "737"},
	"E-7":    {model.PlatformGo, "737"},
	"C-32":   {model.PlatformGo, "757"},
	"E-4":    {model.PlatformGo, "747"},
	"VC-25":  {model.PlatformGo, "747"},
	"E-6":    {model.PlatformGo, "707"},
	"E-6B":   {model.PlatformGo, "707"},
	"KC-135": {model.PlatformGo, "707"},
	"E-3":    {model.PlatformGo, "707"},
	"E-8":    {model.PlatformGo, "707"},
	"C-12":   {model.PlatformGo, "King Air"},
	"UC-12":  {model.PlatformGo, "King Air"},
	"RC-12":  {model.PlatformGo, "King Air"},
	"UC-35":  {model.PlatformGo, "Citation"},
	"C-20":   {model.PlatformGo, "Gulfstream III"},
	"C-37":   {model.PlatformGo, "Gulfstream V"},
	"C-21":   {model.PlatformGo, "Learjet 35"},
	"C-26":   {model.PlatformGo, "Metroliner"},
	"C-47":   {model.PlatformGo, "DC-3"},
	"C-9":    {model.PlatformGo, "DC-9"},
	"KC-10":  {model.PlatformGo, "DC-10"},
	"T-1":    {model.PlatformGo, "Beechjet 400"},
	"T-6":    {model.PlatformGo, "PC-9"},
	"UV-18":  {model.PlatformGo, "Twin Otter"},
	"C-146":  {model.PlatformGo, "Do 328"},
	"C-145":  {model.PlatformGo, "M28"},
	"UC-27":  {model.PlatformGo, "F27"},
	"CN-235": {model.PlatformGo, "CN-235"},
	"HC-144": {model.PlatformGo, "CN-235"},

	// Conditional: civilian variant or mixed commonality.
	"C-130":  {model.PlatformConditional, "L-100"},
	"KC-130": {model.PlatformConditional, "L-100"},
	"AC-130": {model.PlatformConditional, "L-100"},
	"MC-130": {model.PlatformConditional, "L-100"},
	"HC-130": {model.PlatformConditional, "L-100"},
	"EC-130": {model.PlatformConditional, "L-100"},
	"LC-130": {model.PlatformConditional, "L-100"},
	"WC-130": {model.PlatformConditional, "L-100"},
	"C-27":   {model.PlatformConditional, "G222"},
	"UH-72":  {model.PlatformConditional, "EC145"},
	"UH-1":   {model.PlatformConditional, "Bell 212"},
	"UH-1N":  {model.PlatformConditional, "Bell 212"},
	"TH-57":  {model.PlatformConditional, "Bell 206"},
	"TH-67":  {model.PlatformConditional, "Bell 206"},
	"OH-58":  {model.PlatformConditional, "Bell 206"},
	"MH-65":  {model.PlatformConditional, "AS365"},
	"VH-92":  {model.PlatformConditional, "S-92"},
	"MH-60T": {model.PlatformConditional, "S-70"},
	"T-34":   {model.PlatformConditional, "Bonanza"},
	"T-44":   {model.PlatformConditional, "King Air"},
	"U-28":   {model.PlatformConditional, "PC-12"},
	"MC-12":  {model.PlatformConditional, "King Air"},
	"O-2":    {model.PlatformConditional, "Skymaster"},
	"C-23":   {model.PlatformConditional, "Shorts 330"},
	"CL-415": {model.PlatformConditional, "CL-415"},

	// Pure military, NO-GO.
	"F-4":    {model.PlatformNoGo, ""},
	"F-5":    {model.PlatformNoGo, ""},
	"F-14":   {model.PlatformNoGo, ""},
	"F-15":   {model.PlatformNoGo, ""},
	"F-16":   {model.PlatformNoGo, ""},
	"F/A-18": {model.PlatformNoGo, ""},
	"F-18":   {model.PlatformNoGo, ""},
	"F-22":   {model.PlatformNoGo, ""},
	"F-35":   {model.PlatformNoGo, ""},
	"F-117":  {model.PlatformNoGo, ""},
	"A-10":   {model.PlatformNoGo, ""},
	"AV-8":   {model.PlatformNoGo, ""},
	"AV-8B":  {model.PlatformNoGo, ""},
	"B-1":    {model.PlatformNoGo, ""},
	"B-1B":   {model.PlatformNoGo, ""},
	"B-2":    {model.PlatformNoGo, ""},
	"B-21":   {model.PlatformNoGo, ""},
	"B-52":   {model.PlatformNoGo, ""},
	"EA-18G": {model.PlatformNoGo, ""},
	"EA-6B":  {model.PlatformNoGo, ""},
	"E-2":    {model.PlatformNoGo, ""},
	"E-2D":   {model.PlatformNoGo, ""},
	"C-2":    {model.PlatformNoGo, ""},
	"C-5":    {model.PlatformNoGo, ""},
	"C-17":   {model.PlatformNoGo, ""},
	"V-22":   {model.PlatformNoGo, ""},
	"MV-22":  {model.PlatformNoGo, ""},
	"CV-22":  {model.PlatformNoGo, ""},
	"AH-64":  {model.PlatformNoGo, ""},
	"AH-1":   {model.PlatformNoGo, ""},
	"AH-1Z":  {model.PlatformNoGo, ""},
	"UH-60":  {model.PlatformNoGo, ""},
	"MH-60":  {model.PlatformNoGo, ""},
	"HH-60":  {model.PlatformNoGo, ""},
	"SH-60":  {model.PlatformNoGo, ""},
	"CH-47":  {model.PlatformNoGo, ""},
	"MH-47":  {model.PlatformNoGo, ""},
	"CH-53":  {model.PlatformNoGo, ""},
	"CH-53K": {model.PlatformNoGo, ""},
	"MH-53":  {model.PlatformNoGo, ""},
	"T-38":   {model.PlatformNoGo, ""},
	"T-45":   {model.PlatformNoGo, ""},
	"T-7":    {model.PlatformNoGo, ""},
	"U-2":    {model.PlatformNoGo, ""},
	"SR-71":  {model.PlatformNoGo, ""},
	"RQ-4":   {model.PlatformNoGo, ""},
	"MQ-1":   {model.PlatformNoGo, ""},
	"MQ-9":   {model.PlatformNoGo, ""},
	"MQ-25":  {model.PlatformNoGo, ""},
	"RQ-170": {model.PlatformNoGo, ""},
	"X-47":   {model.PlatformNoGo, ""},
	"AC-208": {model.PlatformNoGo, ""},
	"A-29":   {model.PlatformNoGo, ""},
	"OV-10":  {model.PlatformNoGo, ""},
	"S-3":    {model.PlatformNoGo, ""},
	"P-3":    {model.PlatformNoGo, ""},
	"EP-3":   {model.PlatformNoGo, ""},
	"KC-390": {model.PlatformNoGo, ""},
	"AW159":  {model.PlatformNoGo, ""},
	"Mi-17":  {model.PlatformNoGo, ""},
	"Mi-24":  {model.PlatformNoGo, ""},
}

// militaryEngines maps engine designators to verdicts. Commercial engines
// used on military derivatives are GO; pure military engines are NO-GO.
var militaryEngines = map[string]mapping{
	"CFM56":    {model.PlatformGo, "CFM56"},
	"CF6":      {model.PlatformGo, "CF6"},
	"PW2000":   {model.PlatformGo, "PW2000"},
	"PW4000":   {model.PlatformGo, "PW4000"},
	"TF33":     {model.PlatformConditional, "JT3D"},
	"JT8D":     {model.PlatformGo, "JT8D"},
	"PT6A":     {model.PlatformGo, "PT6A"},
	"CT7":      {model.PlatformConditional, "CT7"},
	"AE2100":   {model.PlatformConditional, "AE2100"},
	"AE3007":   {model.PlatformGo, "AE3007"},
	"T56":      {model.PlatformConditional, "501-D"},
	"T700":     {model.PlatformConditional, "CT7"},
	"T58":      {model.PlatformConditional, "CT58"},
	"T64":      {model.PlatformNoGo, ""},
	"F100":     {model.PlatformNoGo, ""},
	"F110":     {model.PlatformNoGo, ""},
	"F119":     {model.PlatformNoGo, ""},
	"F135":     {model.PlatformNoGo, ""},
	"F404":     {model.PlatformNoGo, ""},
	"F414":     {model.PlatformNoGo, ""},
	"TF34":     {model.PlatformConditional, "CF34"},
	"J85":      {model.PlatformNoGo, ""},
	"T400":     {model.PlatformConditional, "PT6T"},
	"AGT1500":  {model.PlatformNoGo, ""},
}

// overridePhrases lift a military block anywhere in the text.
var overridePhrases = []string{
	`AMSC[:\s]+(?:CODE\s+)?[ZGA]\b`,
	`acquisition\s+method\s+suffix\s+code[:\s]+[ZGA]\b`,
	`commercial\s+items?\b`,
	`commercial\s+equivalent`,
	`FAA\s*(?:form\s*)?8130(?:[-\s]?3)?`,
	`airworthiness\s+(?:approval|certificate|tag)`,
}

// civilianManufacturers is the whitelist of civil aviation makers.
var civilianManufacturers = []string{
	"Cessna",
	"Gulfstream",
	"Beechcraft",
	"Learjet",
	"Bombardier",
	"Embraer",
	"Piper",
	"Cirrus",
	"Mooney",
	"Pilatus",
	"Dassault Falcon",
	"De Havilland",
	"ATR",
	"Diamond Aircraft",
	"Daher",
	"Textron Aviation",
}

// civilianModelPatterns match civil airframe model references.
var civilianModelPatterns = []string{
	`Boeing\s+7[0-9]7`,
	`\b7[0-9]7[-\s]?[0-9]{3}\b`,
	`Airbus\s+A3[0-9]{2}`,
	`King\s+Air\s*[0-9]{0,3}`,
	`Citation\s+(?:II|V|X|Excel|Sovereign|Latitude|Longitude)`,
	`\bL[-\s]?100\b`,
	`\bDC[-\s]?(?:3|8|9|10)\b`,
	`\bMD[-\s]?(?:11|80|88|90)\b`,
	`\bCRJ[-\s]?[0-9]{3}\b`,
	`\bERJ[-\s]?1[0-9]{2}\b`,
	`\bE1[79][05](?:-E2)?\b`,
	`\bPC[-\s]?12\b`,
	`\bTBM\s*9[0-9]{2}\b`,
}
