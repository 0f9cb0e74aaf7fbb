package seed

import "github.com/ajitpratap0/techlingo/internal/models"

// builtin is the curated term list. Every entry is immutable and never persisted.
var builtin = []models.Term{
	{
		ID:         "gen-it",
		Name:       "Information Technology (IT)",
		LocalName:  "تقنية المعلومات",
		Definition: "استخدام الأنظمة الحاسوبية والشبكات لمعالجة وتخزين وتبادل البيانات الإلكترونية.",
		Example:    "يعمل مهندسو IT على ضمان استمرارية الأنظمة التقنية في المؤسسات.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "gen-ip",
		Name:       "IP Address",
		LocalName:  "عنوان البروتوكول",
		Definition: "رقم فريد يميز كل جهاز متصل بشبكة الحاسوب، يشبه عنوان المنزل في عالم الإنترنت.",
		Example:    "يحتاج كل جهاز متصل بالواي فاي إلى IP Address للتواصل مع الراوتر.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "gen-os",
		Name:       "Operating System (OS)",
		LocalName:  "نظام التشغيل",
		Definition: "البرنامج الأساسي الذي يدير موارد الجهاز ويوفر بيئة لتشغيل البرامج الأخرى.",
		Example:    "تعد أنظمة Windows و macOS و Linux أشهر أنظمة تشغيل الحواسيب.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "ai-1",
		Name:       "Generative AI (GenAI)",
		LocalName:  "الذكاء الاصطناعي التوليدي",
		Definition: "نماذج ذكاء اصطناعي قادرة على إنشاء محتوى جديد كلياً مثل النصوص والصور والأكواد.",
		Example:    "استخدام GenAI في كتابة رسائل البريد الإلكتروني بشكل تلقائي.",
		Category:   models.CategoryAI,
	},
	{
		ID:         "ai-2",
		Name:       "Machine Learning (ML)",
		LocalName:  "تعلم الآلة",
		Definition: "فرع من الذكاء الاصطناعي يركز على تطوير خوارزميات تسمح للحاسوب بالتعلم من البيانات دون برمجة صريحة.",
		Example:    "تستخدم نتفليكس ML لاقتراح أفلام تناسب ذوقك الشخصي.",
		Category:   models.CategoryAI,
	},
	{
		ID:         "ai-3",
		Name:       "Neural Networks",
		LocalName:  "الشبكات العصبية",
		Definition: "أنظمة حوسبة مستوحاة من الدماغ البشري تُستخدم للتعرف على الأنماط المعقدة.",
		Example:    "تعتمد تقنية التعرف على الوجوه في الهواتف على الشبكات العصبية.",
		Category:   models.CategoryAI,
	},
	{
		ID:         "ai-4",
		Name:       "Computer Vision",
		LocalName:  "الرؤية الحاسوبية",
		Definition: "مجال يهدف لتمكين الحواسيب من فهم وتفسير الصور والفيديوهات الرقمية.",
		Example:    "تستخدم السيارات ذاتية القيادة Computer Vision لتفادي العوائق.",
		Category:   models.CategoryAI,
	},
	{
		ID:         "prog-1",
		Name:       "API",
		LocalName:  "واجهة برمجة التطبيقات",
		Definition: "بروتوكول يسمح لتطبيقات مختلفة بالتواصل وتبادل البيانات مع بعضها البعض.",
		Example:    "يستخدم تطبيق الطقس API للحصول على البيانات من الأرصاد الجوية.",
		Category:   models.CategoryProgramming,
	},
	{
		ID:         "prog-2",
		Name:       "Framework",
		LocalName:  "إطار عمل",
		Definition: "مجموعة من الأدوات والمكتبات البرمجية الجاهزة التي تسهل عملية بناء التطبيقات.",
		Example:    "يعتبر React إطار عمل شهير لبناء واجهات المستخدم.",
		Category:   models.CategoryProgramming,
	},
	{
		ID:         "prog-3",
		Name:       "Open Source",
		LocalName:  "مفتوح المصدر",
		Definition: "برمجيات يكون الكود المصدري لها متاحاً للجميع للاطلاع عليه وتعديله وتوزيعه.",
		Example:    "نظام تشغيل Android هو مشروع مفتوح المصدر.",
		Category:   models.CategoryProgramming,
	},
	{
		ID:         "prog-4",
		Name:       "Backend",
		LocalName:  "خلفية النظام",
		Definition: "الجزء البرمجي الذي يعمل على الخادم ولا يراه المستخدم، ويهتم بالبيانات والمنطق.",
		Example:    "تطوير قاعدة البيانات وعمليات تسجيل الدخول يتم في Backend.",
		Category:   models.CategoryProgramming,
	},
	{
		ID:         "prog-5",
		Name:       "Frontend",
		LocalName:  "واجهة النظام",
		Definition: "كل ما يراه المستخدم ويتفاعل معه في الموقع أو التطبيق.",
		Example:    "تصميم الأزرار والقوائم والألوان يقع ضمن مهام مطور Frontend.",
		Category:   models.CategoryProgramming,
	},
	{
		ID:         "sec-1",
		Name:       "Encryption",
		LocalName:  "التشفير",
		Definition: "عملية تحويل البيانات إلى كود غير مفهوم لمنع الوصول غير المصرح به.",
		Example:    "تستخدم تطبيقات المراسلة التشفير لحماية خصوصية المحادثات.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "sec-2",
		Name:       "Firewall",
		LocalName:  "جدار الحماية",
		Definition: "نظام أمان يراقب ويتحكم في حركة مرور الشبكة بناءً على قواعد أمان محددة.",
		Example:    "يعمل جدار الحماية على منع الهاكرز من اختراق جهازك.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "sec-3",
		Name:       "Phishing",
		LocalName:  "التصيد الاحتيالي",
		Definition: "محاولة خداع المستخدمين للحصول على معلوماتهم الحساسة عبر رسائل مزيفة.",
		Example:    "احذر من روابط البريد الإلكتروني التي تطلب كلمة مرور البنك الخاص بك.",
		Category:   models.CategoryGeneral,
	},
	{
		ID:         "cloud-1",
		Name:       "Cloud Computing",
		LocalName:  "الحوسبة السحابية",
		Definition: "توفير موارد تقنية مثل التخزين والقوة الحسابية عبر الإنترنت بدلاً من امتلاكها محلياً.",
		Example:    "تعد AWS و Google Cloud أشهر مزودي خدمات الحوسبة السحابية.",
		Category:   models.CategoryCloud,
	},
	{
		ID:         "net-1",
		Name:       "Bandwidth",
		LocalName:  "عرض النطاق الترددي",
		Definition: "الكمية القصوى من البيانات التي يمكن نقلها عبر اتصال إنترنت في وقت محدد.",
		Example:    "كلما زاد الـ Bandwidth، زادت سرعة تحميل الملفات الكبيرة.",
		Category:   models.CategoryNetworking,
	},
	{
		ID:         "net-2",
		Name:       "Protocol",
		LocalName:  "بروتوكول",
		Definition: "مجموعة من القواعد التي تحدد كيفية تبادل البيانات بين الأجهزة في الشبكة.",
		Example:    "HTTP هو البروتوكول المستخدم لتصفح مواقع الويب.",
		Category:   models.CategoryNetworking,
	},
	{
		ID:         "hard-1",
		Name:       "SSD (Solid State Drive)",
		LocalName:  "قرص الحالة الصلبة",
		Definition: "نوع حديث وسريع جداً من أقراص تخزين البيانات مقارنة بالأقراص التقليدية HDD.",
		Example:    "ترقية حاسوبك بقرص SSD يجعل تشغيل النظام أسرع بكثير.",
		Category:   models.CategoryHardware,
	},
	{
		ID:         "hard-2",
		Name:       "GPU (Graphics Processing Unit)",
		LocalName:  "وحدة معالجة الرسوميات",
		Definition: "معالج متخصص في معالجة الصور والرسوميات، ويستخدم بكثرة في الألعاب والذكاء الاصطناعي.",
		Example:    "تحتاج معالجة نماذج الذكاء الاصطناعي إلى GPU قوية.",
		Category:   models.CategoryHardware,
	},
	{
		ID:         "hard-3",
		Name:       "RAM (Random Access Memory)",
		LocalName:  "ذاكرة الوصول العشوائي",
		Definition: "الذاكرة المؤقتة التي يستخدمها الحاسوب لتخزين البيانات الحالية التي يعمل عليها.",
		Example:    "زيادة RAM تسمح لك بفتح برامج كثيرة في وقت واحد دون بطء.",
		Category:   models.CategoryHardware,
	},
}

// Terms returns a fresh copy of the built-in term list.
func Terms() []models.Term {
	out := make([]models.Term, len(builtin))
	copy(out, builtin)
	return out
}
