package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Locale codes.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

// AuditLabels holds the wording used in audit findings and the text report.
type AuditLabels struct {
	Title           string
	StatusLabel     string
	IssuesLabel     string
	IssueTypeLabel  string
	DescriptionLbl  string
	SuggestionLabel string
	Recommendations string
	StatusText      map[AuditStatus]string
	IssueNames      map[IssueKind]string
	Recommend       map[IssueKind]string

	ImbalanceDescription string // entry, debit total, credit total
	ImbalanceSuggestion  string // entry
	MisclassDescription  string // row reference, type
	MisclassSuggestion   string
	InvalidDescription   string // row reference, value
	InvalidSuggestion    string // row reference
}

// Locale bundles the vocabulary of one interface language: account names,
// transaction labels, banners, placeholders and audit wording.
type Locale struct {
	Code                string
	Currency            string
	Chart               Chart
	TypeLabels          map[TransactionKind]string
	Banners             map[TransactionKind]string
	CustomerPlaceholder string
	SupplierPlaceholder string
	StatusPending       string
	StatusCompleted     string
	GenericExpenseType  string
	InvoiceSupplier     string
	InvoiceItems        []LineItem
	Audit               AuditLabels
}

// Banner returns the block banner for kind.
func (l Locale) Banner(kind TransactionKind) string {
	if b, ok := l.Banners[kind]; ok {
		return b
	}
	return l.Banners[KindGeneral]
}

// GenericExpenseTypes are Type values that say nothing about the expense account.
func (l Locale) GenericExpenseTypes() []string {
	return []string{l.GenericExpenseType, l.Chart.GeneralExpenses, l.TypeLabels[KindExpense], l.TypeLabels[KindGeneral]}
}

// DefaultSaleKeywords and DefaultPurchaseKeywords drive the rule classifier.
var (
	DefaultSaleKeywords     = []string{"بيع", "مبيعات", "sale", "sold"}
	DefaultPurchaseKeywords = []string{"شراء", "مشتريات", "purchase", "bought"}
)

var arabic = Locale{
	Code:     LocaleArabic,
	Currency: "ريال سعودي",
	Chart: Chart{
		AccountsReceivable: "حساب المدينين",
		SalesRevenue:       "إيرادات المبيعات",
		Purchases:          "المشتريات",
		AccountsPayable:    "حساب الدائنين",
		GeneralExpenses:    "مصروفات عامة",
		Bank:               "البنك",
		VATOutput:          "ضريبة القيمة المضافة المستحقة",
		VATInput:           "ضريبة القيمة المضافة القابلة للاسترداد",
		ExpenseTypes:       []string{"رواتب", "إيجار", "كهرباء ومياه", "مستلزمات مكتبية", "صيانة", "نقل ومواصلات", "اتصالات"},
	},
	TypeLabels: map[TransactionKind]string{
		KindSale:     "بيع",
		KindPurchase: "شراء",
		KindExpense:  "مصروف",
		KindGeneral:  "عام",
	},
	Banners: map[TransactionKind]string{
		KindSale:     "=== معاملة بيع ===",
		KindPurchase: "=== معاملة شراء ===",
		KindGeneral:  "=== معاملة محاسبية ===",
	},
	CustomerPlaceholder: "عميل",
	SupplierPlaceholder: "مورد",
	StatusPending:       "معلقة",
	StatusCompleted:     "مكتمل",
	GenericExpenseType:  "مصروف",
	InvoiceSupplier:     "شركة المعدات المتحدة",
	InvoiceItems: []LineItem{
		{Description: "طابعة ليزر", Quantity: 2, UnitPrice: decimal.NewFromInt(1200), Total: decimal.NewFromInt(2400)},
		{Description: "حبر طابعة", Quantity: 5, UnitPrice: decimal.NewFromInt(170), Total: decimal.NewFromInt(850)},
	},
	Audit: AuditLabels{
		Title:           "نتائج تدقيق النظام المحاسبي",
		StatusLabel:     "حالة التدقيق",
		IssuesLabel:     "المشكلات المكتشفة",
		IssueTypeLabel:  "نوع المشكلة",
		DescriptionLbl:  "الوصف",
		SuggestionLabel: "الاقتراح",
		Recommendations: "التوصيات العامة",
		StatusText: map[AuditStatus]string{
			AuditClean:       "تم التدقيق",
			AuditIssuesFound: "تم التدقيق - توجد مشكلات",
		},
		IssueNames: map[IssueKind]string{
			IssueImbalance:         "تناقض",
			IssueMisclassification: "تصنيف خاطئ",
			IssueInvalidAmount:     "مبلغ غير صالح",
		},
		Recommend: map[IssueKind]string{
			IssueImbalance:         "تعديل القيد المحاسبي لتحقيق التوازن",
			IssueMisclassification: "مراجعة دليل الحسابات للتأكد من التصنيف الصحيح",
			IssueInvalidAmount:     "تصحيح المبالغ غير الرقمية قبل إعداد التقارير",
		},
		ImbalanceDescription: "الرصيد المدين لا يساوي الرصيد الدائن في قيد اليومية %s (مدين %s، دائن %s)",
		ImbalanceSuggestion:  "مراجعة القيد رقم %s",
		MisclassDescription:  "المصروف في %s مصنف تحت \"%s\" وهو ليس حساب مصروفات معتمد",
		MisclassSuggestion:   "إعادة تصنيف المصروف إلى حساب من دليل الحسابات",
		InvalidDescription:   "المبلغ في %s غير صالح: \"%s\"",
		InvalidSuggestion:    "تصحيح المبلغ في %s",
	},
}

var english = Locale{
	Code:     LocaleEnglish,
	Currency: "SAR",
	Chart: Chart{
		AccountsReceivable: "Accounts Receivable",
		SalesRevenue:       "Sales Revenue",
		Purchases:          "Purchases",
		AccountsPayable:    "Accounts Payable",
		GeneralExpenses:    "General Expenses",
		Bank:               "Bank",
		VATOutput:          "VAT Output",
		VATInput:           "VAT Input",
		ExpenseTypes:       []string{"Salaries", "Rent", "Utilities", "Office Supplies", "Maintenance", "Transport", "Telecommunications"},
	},
	TypeLabels: map[TransactionKind]string{
		KindSale:     "Sale",
		KindPurchase: "Purchase",
		KindExpense:  "Expense",
		KindGeneral:  "General",
	},
	Banners: map[TransactionKind]string{
		KindSale:     "=== Sale Transaction ===",
		KindPurchase: "=== Purchase Transaction ===",
		KindGeneral:  "=== Accounting Transaction ===",
	},
	CustomerPlaceholder: "Customer",
	SupplierPlaceholder: "Supplier",
	StatusPending:       "Pending",
	StatusCompleted:     "Completed",
	GenericExpenseType:  "Expense",
	InvoiceSupplier:     "United Equipment Co.",
	InvoiceItems: []LineItem{
		{Description: "Laser printer", Quantity: 2, UnitPrice: decimal.NewFromInt(1200), Total: decimal.NewFromInt(2400)},
		{Description: "Printer toner", Quantity: 5, UnitPrice: decimal.NewFromInt(170), Total: decimal.NewFromInt(850)},
	},
	Audit: AuditLabels{
		Title:           "Accounting system audit results",
		StatusLabel:     "Audit status",
		IssuesLabel:     "Issues found",
		IssueTypeLabel:  "Issue type",
		DescriptionLbl:  "Description",
		SuggestionLabel: "Suggestion",
		Recommendations: "Recommendations",
		StatusText: map[AuditStatus]string{
			AuditClean:       "Audited",
			AuditIssuesFound: "Audited - issues found",
		},
		IssueNames: map[IssueKind]string{
			IssueImbalance:         "Inconsistency",
			IssueMisclassification: "Misclassification",
			IssueInvalidAmount:     "Invalid amount",
		},
		Recommend: map[IssueKind]string{
			IssueImbalance:         "Adjust the journal entry so that it balances",
			IssueMisclassification: "Review the chart of accounts to confirm correct classification",
			IssueInvalidAmount:     "Correct non-numeric amounts before reporting",
		},
		ImbalanceDescription: "Debit total does not equal credit total in journal entry %s (debit %s, credit %s)",
		ImbalanceSuggestion:  "Review entry %s",
		MisclassDescription:  "Expense %s is classified as \"%s\", which is not a declared expense account",
		MisclassSuggestion:   "Reclassify the expense to an account from the chart of accounts",
		InvalidDescription:   "Amount in %s is not a valid number: \"%s\"",
		InvalidSuggestion:    "Correct the amount in %s",
	},
}

// LocaleFor returns the locale for code, falling back to Arabic.
func LocaleFor(code string) Locale {
	if strings.EqualFold(code, LocaleEnglish) {
		return english
	}
	return arabic
}

// ResolveKind maps a transaction_type value in any supported language back to a kind.
// Matching is by containment, sale first, then purchase, then expense.
func ResolveKind(label string) TransactionKind {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return KindGeneral
	}
	for _, kind := range []TransactionKind{KindSale, KindPurchase, KindExpense} {
		if strings.Contains(l, strings.ToLower(string(kind))) {
			return kind
		}
		for _, loc := range []Locale{arabic, english} {
			if strings.Contains(l, strings.ToLower(loc.TypeLabels[kind])) {
				return kind
			}
		}
	}
	return KindGeneral
}
