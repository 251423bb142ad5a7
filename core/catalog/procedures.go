package catalog

// Built-in procedure catalogs. External catalogs can be added through
// LoadFile; these cover the procedures the system ships with.
var builtin = []Catalog{
	{
		Procedure: "Heart Transplantation",
		Machines: []Machine{
			{
				Name:        "Patient Monitor",
				Description: "Continuously monitors ECG, arterial blood pressure, SpO2, CVP, and core temperature throughout the transplant.",
				Aliases:     []string{"monitor", "vitals monitor", "cardiac monitor", "hemodynamic monitor"},
			},
			{
				Name:        "Ventilator",
				Description: "Provides controlled mechanical ventilation via endotracheal tube during the procedure and until weaning post-transplant.",
				Aliases:     []string{"vent", "breathing machine", "mechanical ventilation"},
			},
			{
				Name:        "Anesthesia Machine",
				Description: "Delivers inhalational anesthetic agents mixed with oxygen and air for general anesthesia maintenance.",
				Aliases:     []string{"anesthesia", "gas machine", "anaesthesia machine"},
			},
			{
				Name:        "Cardiopulmonary Bypass Machine",
				Description: "Takes over heart and lung function during cardiac arrest phase; oxygenates and pumps blood through the patient's body.",
				Aliases:     []string{"bypass machine", "heart-lung machine", "CPB", "bypass pump", "pump"},
			},
			{
				Name:        "Perfusion Pump",
				Description: "Delivers cardioplegia solution to arrest the donor heart and preservative perfusate to maintain graft viability.",
				Aliases:     []string{"perfusion", "cardioplegia pump", "del nido pump"},
			},
			{
				Name:        "Defibrillator",
				Description: "Delivers electrical shocks to restore normal sinus rhythm after reperfusion of the transplanted heart.",
				Aliases:     []string{"defib", "shock machine", "cardioverter", "defibrillator unit"},
			},
			{
				Name:        "Electrocautery Unit",
				Description: "Provides monopolar and bipolar electrosurgical current for cutting tissue and coagulating bleeding vessels.",
				Aliases:     []string{"cautery", "bovie", "electrosurgical unit", "ESU", "diathermy", "electrosurgery unit", "bipolar electrosurgery unit"},
			},
			{
				Name:        "Suction Device",
				Description: "Removes blood and fluids from the operative field to maintain clear surgical visibility.",
				Aliases:     []string{"suction", "suction machine", "aspirator", "suction unit"},
			},
			{
				Name:        "Blood Warmer",
				Description: "Warms transfused blood products to body temperature to prevent hypothermia-induced coagulopathy.",
				Aliases:     []string{"blood warmer", "fluid warmer", "Ranger", "warming unit"},
			},
			{
				Name:        "Warming Blanket",
				Description: "Forced-air warming system maintains normothermia during re-warming phase and sternal closure.",
				Aliases:     []string{"warming blanket", "bair hugger", "forced air warmer", "patient warmer"},
			},
			{
				Name:        "Surgical Lights",
				Description: "Overhead surgical LED lights provide shadow-free illumination of the operative field.",
				Aliases:     []string{"lights", "OR lights", "overhead lights", "surgical lamp", "theatre lights"},
			},
			{
				Name:        "Instrument Table",
				Description: "Sterile back table and Mayo stand holding all surgical instruments, sutures, and implants.",
				Aliases:     []string{"instrument table", "back table", "mayo stand", "scrub table"},
			},
			{
				Name:        "Cell Saver",
				Description: "Autologous blood salvage collects and re-infuses washed red cells from the bypass circuit and operative field.",
				Aliases:     []string{"cell saver", "autotransfusion", "cell salvage"},
			},
			{
				Name:        "Transesophageal Echo Unit",
				Description: "Intraoperative transesophageal echocardiography probe monitors cardiac function, valve competence, and de-airing in real time.",
				Aliases:     []string{"TEE", "transesophageal echo", "echo machine", "TOE", "intraop echo"},
			},
			{
				Name:        "Intra-Aortic Balloon Pump",
				Description: "Counterpulsation device inserted via femoral artery to augment coronary perfusion and reduce cardiac afterload post-implant.",
				Aliases:     []string{"IABP", "balloon pump", "aortic balloon", "intra-aortic pump"},
			},
		},
	},
	{
		Procedure: "Liver Resection",
		Machines: []Machine{
			{
				Name:        "Patient Monitor",
				Description: "Monitors ECG, NIBP/ABP, SpO2, EtCO2, temperature and urine output during liver ischaemia.",
				Aliases:     []string{"monitor", "vitals monitor", "hemodynamic monitor"},
			},
			{
				Name:        "Ventilator",
				Description: "Maintains mechanical ventilation; low tidal volumes reduce hepatic venous pressure during resection.",
				Aliases:     []string{"vent", "breathing machine", "mechanical ventilation"},
			},
			{
				Name:        "Anesthesia Machine",
				Description: "Delivers total intravenous anesthesia or volatile agents.",
				Aliases:     []string{"anesthesia", "gas machine", "anaesthesia machine"},
			},
			{
				Name:        "Electrocautery Unit",
				Description: "Monopolar and bipolar cautery for parenchymal transection and vessel sealing during hepatectomy.",
				Aliases:     []string{"cautery", "bovie", "electrosurgical unit", "ESU", "diathermy"},
			},
			{
				Name:        "Argon Beam Coagulator",
				Description: "Uses ionised argon gas to conduct monopolar current across the liver cut surface for rapid haemostasis.",
				Aliases:     []string{"argon beam", "ABC", "argon coagulator", "ABC unit"},
			},
			{
				Name:        "Ultrasonic Dissector (CUSA)",
				Description: "Ultrasonic aspirator fragments and aspirates liver parenchyma while sparing bile ducts and blood vessels.",
				Aliases:     []string{"CUSA", "ultrasonic dissector", "cavitron", "ultrasonic aspirator", "CUSA device"},
			},
			{
				Name:        "Suction Device",
				Description: "Removes blood, bile, and irrigant from the operative field.",
				Aliases:     []string{"suction", "aspirator", "suction machine", "suction unit"},
			},
			{
				Name:        "Cell Saver",
				Description: "Autologous blood salvage system collects shed blood, washes and re-infuses red cells.",
				Aliases:     []string{"cell saver", "autotransfusion", "cell salvage", "CATS"},
			},
			{
				Name:        "Fluid Warmer",
				Description: "Warms IV fluids and blood products inline to prevent hypothermia during large-volume resuscitation.",
				Aliases:     []string{"fluid warmer", "blood warmer", "hot line", "level 1", "patient warmer", "warming unit"},
			},
			{
				Name:        "Laparoscopy Tower",
				Description: "HD video display for laparoscopic or hand-assisted approach, with camera unit, light source, and recorder.",
				Aliases:     []string{"laparoscopy tower", "lap tower", "video tower", "camera tower", "laparoscopic tower", "laparoscope tower"},
			},
			{
				Name:        "CO2 Insufflator",
				Description: "Maintains pneumoperitoneum at 12-15 mmHg for laparoscopic liver resection.",
				Aliases:     []string{"insufflator", "CO2 insufflator", "pneumoperitoneum machine"},
			},
			{
				Name:        "Surgical Lights",
				Description: "Overhead LED surgical lights for open or hand-assisted hepatic resection.",
				Aliases:     []string{"lights", "OR lights", "overhead lights", "surgical lamp"},
			},
			{
				Name:        "Intraoperative Ultrasound",
				Description: "High-frequency probe maps intrahepatic vascular anatomy and detects small lesions during resection.",
				Aliases:     []string{"IOUS", "intraop ultrasound", "liver ultrasound", "intraoperative US"},
			},
			{
				Name:        "Hepatic Retractor System",
				Description: "Self-retaining retractor frame provides sustained hepatic exposure.",
				Aliases:     []string{"liver retractor", "hepatic retractor", "retractor system", "bookwalter"},
			},
			{
				Name:        "Haemostatic Agent Applicator",
				Description: "Delivers fibrin glue, oxidised cellulose or thrombin-gelatin matrix to the liver cut surface.",
				Aliases:     []string{"tachosil", "surgicel", "floseal", "haemostatic agent", "hemostatic applicator"},
			},
		},
	},
	{
		Procedure: "Appendectomy",
		Machines: []Machine{
			{
				Name:        "Patient Monitor",
				Description: "Monitors ECG, SpO2, NIBP, and EtCO2 during laparoscopic appendicectomy.",
				Aliases:     []string{"monitor", "vitals monitor", "hemodynamic monitor"},
			},
			{
				Name:        "Ventilator",
				Description: "Mechanical ventilation via endotracheal tube for general anaesthesia.",
				Aliases:     []string{"vent", "breathing machine", "mechanical ventilation"},
			},
			{
				Name:        "Anesthesia Machine",
				Description: "Delivers volatile agents and maintains airway during the procedure.",
				Aliases:     []string{"anesthesia", "gas machine", "anaesthesia machine"},
			},
			{
				Name:        "Laparoscopy Tower",
				Description: "HD camera, light source, and display unit for laparoscopic visualisation.",
				Aliases:     []string{"laparoscopy tower", "lap tower", "video tower", "camera tower"},
			},
			{
				Name:        "CO2 Insufflator",
				Description: "Creates pneumoperitoneum at 12-15 mmHg for safe trocar insertion and laparoscopic access.",
				Aliases:     []string{"insufflator", "CO2 insufflator", "pneumoperitoneum machine"},
			},
			{
				Name:        "Electrocautery Unit",
				Description: "Monopolar hook and bipolar forceps for mesoappendix sealing and trocar site haemostasis.",
				Aliases:     []string{"cautery", "bovie", "ESU", "diathermy"},
			},
			{
				Name:        "Suction Device",
				Description: "Aspirates purulent fluid, peritoneal washout, and smoke plume during dissection.",
				Aliases:     []string{"suction", "suction machine", "aspirator"},
			},
			{
				Name:        "Irrigation Pump",
				Description: "Delivers warm saline for peritoneal lavage when perforation or peritonitis is present.",
				Aliases:     []string{"irrigation pump", "lavage pump", "saline pump"},
			},
			{
				Name:        "LigaSure Vessel Sealer",
				Description: "Bipolar vessel-sealing device divides the mesoappendix vessels with minimal thermal spread.",
				Aliases:     []string{"ligasure", "vessel sealer", "bipolar sealer", "tissue fusion device"},
			},
			{
				Name:        "Surgical Stapler",
				Description: "Endoscopic linear stapler transects and seals the appendix base.",
				Aliases:     []string{"stapler", "endo stapler", "linear stapler", "endostapler"},
			},
			{
				Name:        "Warming Blanket",
				Description: "Maintains patient normothermia throughout the procedure.",
				Aliases:     []string{"warming blanket", "bair hugger", "forced air warmer"},
			},
			{
				Name:        "Surgical Lights",
				Description: "Overhead OR lights for port site access and any open conversion.",
				Aliases:     []string{"lights", "OR lights", "overhead lights", "surgical lamp"},
			},
			{
				Name:        "Instrument Table",
				Description: "Sterile back table with laparoscopic and open conversion instruments.",
				Aliases:     []string{"instrument table", "back table", "mayo stand", "scrub table"},
			},
			{
				Name:        "Patient Warmer",
				Description: "Under-body resistive heating mattress provides additional warmth.",
				Aliases:     []string{"patient warmer", "warming mattress", "underbody warmer", "resistive warmer"},
			},
		},
	},
}
